package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
)

// menuLimit limita quantos produtos aparecem no cardápio exibido durante
// um pedido ativo
const menuLimit = 10

// handleOrderUpdate processa alterações em um pedido ativo: confirmação ou
// rejeição do rascunho pendente, cancelamento, exibição de cardápio por
// categoria e adição de itens ao rascunho. Sem rascunho ativo, redireciona
// o cliente para iniciar um pedido novo.
func (e *Engine) handleOrderUpdate(ctx context.Context, st *State) error {
	userName := st.UserName()
	message := st.LastMessage()

	if message == "" {
		st.FinalResponse = "I'm here to help with your order! What would you like to do?"
		st.RequiresConfirmation = false
		return nil
	}

	if !st.OrderDraft.HasItems() {
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"¡Hola %s! Veo que aún no has iniciado un pedido. "+
					"¿Qué te gustaría ordenar?", userName)
		} else {
			st.FinalResponse = "I don't see an active order. What would you like to order?"
		}
		st.RequiresConfirmation = false
		return nil
	}

	// Com o rascunho pendente, sim/não decide o destino do pedido antes de
	// qualquer outra alteração. Mensagem ambígua segue o fluxo normal.
	confirmed := isConfirmation(message)
	rejected := isRejection(message)

	if confirmed && !rejected {
		e.confirmDraft(ctx, st)
		return nil
	}

	if st.TenantID == "" {
		st.FinalResponse = "I'm sorry, I couldn't identify your business. Please try again."
		st.RequiresConfirmation = false
		return nil
	}

	if rejected || isCancellation(message) {
		st.OrderDraft = nil
		st.RequiresConfirmation = false
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"Entendido, %s. He cancelado tu pedido. "+
					"Si cambias de opinión, con gusto puedo ayudarte a crear uno nuevo.", userName)
		} else {
			st.FinalResponse = "I've canceled your order. " +
				"If you change your mind, I'd be happy to help you create a new one."
		}
		return nil
	}

	products, err := e.store.Products.ListActive(ctx, st.TenantID)
	if err != nil || len(products) == 0 {
		st.FinalResponse = "I'm sorry, but I couldn't find any products available. Please try again later."
		st.RequiresConfirmation = false
		return nil
	}

	candidates := e.extractItems(ctx, products, message)

	// Sem produto específico na mensagem, mostra o cardápio filtrado pela
	// categoria mencionada (bebidas, postres, comidas)
	if len(candidates) == 0 {
		st.FinalResponse = buildMenuReply(products, message, userName)
		st.RequiresConfirmation = false
		return nil
	}

	added, shortages := e.validateStock(ctx, st.TenantID, products, candidates)

	if len(added) == 0 && len(shortages) > 0 {
		var lines []string
		for _, s := range shortages {
			if s.Available > 0 {
				lines = append(lines, fmt.Sprintf(
					"- %s: Solicitaste %d, pero solo tenemos %d disponibles",
					s.Name, s.Requested, s.Available))
			} else {
				lines = append(lines, fmt.Sprintf("- %s: Agotado", s.Name))
			}
		}
		st.FinalResponse = "Lo siento, no pude agregar estos items por falta de stock:\n\n" +
			strings.Join(lines, "\n") +
			"\n\n¿Te gustaría ordenar otra cosa?"
		st.RequiresConfirmation = false
		return nil
	}

	if len(added) == 0 {
		st.FinalResponse = buildMenuReply(products, message, userName)
		st.RequiresConfirmation = false
		return nil
	}

	for _, item := range added {
		st.OrderDraft.AddItem(item)
	}

	var summary []string
	if userName != "" {
		summary = append(summary, fmt.Sprintf("¡Perfecto %s! He agregado a tu pedido:\n", userName))
	} else {
		summary = append(summary, "Great! I've added to your order:\n")
	}
	summary = append(summary, draftItemLines(added)...)
	summary = append(summary, "\n**Resumen completo de tu pedido:**\n")
	summary = append(summary, draftItemLines(st.OrderDraft.Items)...)
	summary = append(summary, fmt.Sprintf("\n**Total: %s**", formatMoney(st.OrderDraft.Total)))

	if userName != "" {
		summary = append(summary, fmt.Sprintf("\n¿Deseas agregar algo más o confirmamos tu pedido, %s?", userName))
	} else {
		summary = append(summary, "\nWould you like to add anything else or confirm your order?")
	}

	st.RequiresConfirmation = true
	st.FinalResponse = strings.Join(summary, "\n")
	return nil
}

// buildMenuReply monta o cardápio exibido durante um pedido ativo,
// filtrado pela categoria detectada na mensagem quando houver
func buildMenuReply(products []product.Product, message, userName string) string {
	category := detectCategory(message)

	filtered := products
	if category != "" {
		filtered = nil
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Category), category) {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			filtered = products
		}
	}

	categoryName := category
	if categoryName == "" {
		categoryName = "productos"
		if !strings.ContainsAny(strings.ToLower(message), "áéíóú") {
			categoryName = "products"
		}
	}

	var lines []string
	if userName != "" {
		lines = append(lines, fmt.Sprintf("¡Claro %s! Aquí están nuestras opciones de %s:\n", userName, categoryName))
	} else {
		lines = append(lines, fmt.Sprintf("Here are our %s:\n", categoryName))
	}

	for i, p := range filtered {
		if i >= menuLimit {
			break
		}
		lines = append(lines, fmt.Sprintf("• %s - %s", p.Name, formatMoney(p.Price)))
	}

	if userName != "" {
		lines = append(lines, fmt.Sprintf("\n¿Cuál te gustaría agregar a tu pedido, %s?", userName))
	} else {
		lines = append(lines, "\nWhich one would you like to add to your order?")
	}
	return strings.Join(lines, "\n")
}
