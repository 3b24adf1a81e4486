package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/agente-atendimento/internal/capability"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
)

// stockShortage descreve um item que não pôde entrar no pedido por falta
// de estoque
type stockShortage struct {
	Name      string
	Requested int
	Available int
}

// handleOrderCreate processa a criação de pedidos: confirmação ou rejeição
// de um rascunho pendente, validação de horário de funcionamento, extração
// de itens do catálogo e checagem de estoque antes de montar o resumo.
func (e *Engine) handleOrderCreate(ctx context.Context, st *State) error {
	userName := st.UserName()
	message := st.LastMessage()

	if message == "" {
		st.FinalResponse = orderGreeting(st)
		st.RequiresConfirmation = false
		return nil
	}

	// Com um rascunho pendente, sim/não decide o destino do pedido antes de
	// qualquer outra interpretação. Mensagem ambígua segue o fluxo normal.
	if st.OrderDraft.HasItems() {
		confirmed := isConfirmation(message)
		rejected := isRejection(message)

		if confirmed && !rejected {
			e.confirmDraft(ctx, st)
			return nil
		}
		if rejected {
			st.OrderDraft = nil
			st.RequiresConfirmation = false
			if userName != "" {
				st.FinalResponse = fmt.Sprintf(
					"¡Sin problema, %s! Tu pedido ha sido cancelado. "+
						"Dime qué te gustaría pedir en su lugar.", userName)
			} else {
				st.FinalResponse = "No problem! Your order has been cancelled. " +
					"Feel free to tell me what you'd like to order instead."
			}
			return nil
		}
	}

	if st.TenantID == "" {
		st.FinalResponse = "I'm sorry, I couldn't identify your business. Please try again."
		st.RequiresConfirmation = false
		return nil
	}

	t, err := e.store.Tenants.FindByID(ctx, st.TenantID)
	if err != nil || t == nil {
		e.logger.Warn("tenant lookup failed in order handler",
			"tenant_id", st.TenantID, "error", err)
		st.FinalResponse = "I'm sorry, I couldn't find the business information. Please try again."
		st.RequiresConfirmation = false
		return nil
	}

	// Pedido só é aceito dentro do horário de funcionamento do tenant
	status := checkBusinessHours(t, e.now())
	if !status.Open {
		st.FinalResponse = fmt.Sprintf(
			"I'm sorry, but we're currently closed. "+
				"Our hours today (%s) are: %s. "+
				"Please come back during our business hours!",
			capitalize(status.Day), status.Spec)
		st.RequiresConfirmation = false
		return nil
	}

	products, err := e.store.Products.ListActive(ctx, st.TenantID)
	if err != nil || len(products) == 0 {
		st.FinalResponse = "I'm sorry, but I couldn't find any products available. Please try again later."
		st.RequiresConfirmation = false
		return nil
	}

	candidates := e.extractItems(ctx, products, message)
	if len(candidates) == 0 {
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"¡Claro %s! Para hacer tu pedido necesito saber qué productos te gustaría. "+
					"¿Quieres que te muestre nuestro menú? Solo dime 'ver menú' o pregúntame qué tenemos disponible.",
				userName)
		} else {
			st.FinalResponse = "I'm sorry, I couldn't identify any products from your message. " +
				"Could you please specify which products you'd like to order? " +
				"You can ask me about our menu if you'd like to see what's available."
		}
		st.RequiresConfirmation = false
		return nil
	}

	items, shortages := e.validateStock(ctx, st.TenantID, products, candidates)

	if len(items) == 0 && len(shortages) > 0 {
		st.FinalResponse = "I'm sorry, but we don't have sufficient stock for your order:\n\n" +
			strings.Join(shortageLines(shortages), "\n") +
			"\n\nWould you like to adjust your order?"
		st.RequiresConfirmation = false
		return nil
	}

	if len(items) == 0 {
		st.FinalResponse = "I couldn't process any items from your order. Please try again."
		st.RequiresConfirmation = false
		return nil
	}

	draft := &order.Draft{}
	for _, item := range items {
		draft.AddItem(item)
	}

	var summary []string
	if userName != "" {
		summary = append(summary, fmt.Sprintf("¡Perfecto %s! Aquí está el resumen de tu pedido:\n", userName))
	} else {
		summary = append(summary, "Here's your order summary:\n")
	}
	summary = append(summary, draftItemLines(draft.Items)...)
	summary = append(summary, fmt.Sprintf("\n**Total: %s**", formatMoney(draft.Total)))

	if len(shortages) > 0 {
		summary = append(summary,
			"\n\n⚠️ Note: Some items have insufficient stock:\n"+
				strings.Join(shortageLines(shortages), "\n"))
	}

	if userName != "" {
		summary = append(summary, fmt.Sprintf("\n\n¿Confirmamos tu pedido, %s?", userName))
	} else {
		summary = append(summary, "\n\nWould you like to confirm this order?")
	}

	st.OrderDraft = draft
	st.RequiresConfirmation = true
	st.FinalResponse = strings.Join(summary, "\n")
	return nil
}

// confirmDraft materializa o rascunho confirmado como pedido persistido.
// Falha de persistência mantém o rascunho e a confirmação pendente: o
// cliente pode confirmar de novo sem perder o pedido.
func (e *Engine) confirmDraft(ctx context.Context, st *State) {
	userName := st.UserName()

	if st.TenantID == "" || st.ConversationID == "" {
		st.FinalResponse = "I'm sorry, there was an error processing your order. Please try again."
		st.RequiresConfirmation = false
		st.OrderDraft = nil
		return
	}

	o, err := st.OrderDraft.ToOrder(st.TenantID, st.ConversationID)
	if err != nil {
		st.FinalResponse = "I'm sorry, there was an error processing your order. Please try again."
		st.RequiresConfirmation = false
		st.OrderDraft = nil
		return
	}

	if err := e.store.Orders.Create(ctx, o); err != nil {
		e.logger.Error("order persistence failed, keeping draft",
			"conversation_id", st.ConversationID,
			"total", st.OrderDraft.Total,
			"error", err)
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"Lo siento, %s, tuve un problema al registrar tu pedido. "+
					"Tu pedido sigue guardado: ¿confirmamos de nuevo en un momento?", userName)
		} else {
			st.FinalResponse = "I'm sorry, I had trouble saving your order just now. " +
				"Your order is still here. Could you confirm again in a moment?"
		}
		st.RequiresConfirmation = true
		return
	}

	total := formatMoney(st.OrderDraft.Total)
	if userName != "" {
		st.FinalResponse = fmt.Sprintf(
			"✅ ¡Pedido confirmado, %s! ID: %s\n\n"+
				"Total: %s\n\n"+
				"Ya estamos preparando tu pedido. ¡Gracias por tu compra! 🎉",
			userName, o.ID, total)
	} else {
		st.FinalResponse = fmt.Sprintf(
			"✅ Your order has been confirmed! Order ID: %s\n\n"+
				"Total: %s\n\n"+
				"We'll start preparing your order right away. Thank you for your purchase!",
			o.ID, total)
	}
	st.RequiresConfirmation = false
	st.OrderDraft = nil
}

// extractItems chama o serviço de extração com prazo. Falha da capacidade
// equivale a nenhum item reconhecido.
func (e *Engine) extractItems(ctx context.Context, products []product.Product, message string) []capability.CandidateItem {
	capCtx, cancel := e.capContext(ctx)
	defer cancel()

	items, err := e.caps.Extractor.ExtractItems(capCtx, catalogView(products), message)
	if err != nil {
		e.logger.Warn("item extraction failed", "error", err)
		return nil
	}
	return items
}

// validateStock checa estoque item a item e converte candidatos aprovados
// em itens de rascunho com preço do catálogo. Produto sem registro de
// inventário conta como estoque zero; candidato cujo produto não existe no
// catálogo é descartado em silêncio.
func (e *Engine) validateStock(ctx context.Context, tenantID string, products []product.Product, candidates []capability.CandidateItem) ([]order.DraftItem, []stockShortage) {
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var items []order.DraftItem
	var shortages []stockShortage

	for _, c := range candidates {
		inv, err := e.store.Products.FindInventory(ctx, tenantID, c.ProductID)
		if err != nil {
			e.logger.Warn("inventory lookup failed",
				"tenant_id", tenantID, "product_id", c.ProductID, "error", err)
		}
		if inv == nil {
			shortages = append(shortages, stockShortage{Name: c.ProductName, Requested: c.Quantity})
			continue
		}
		if !inv.HasStock(c.Quantity) {
			shortages = append(shortages, stockShortage{
				Name:      c.ProductName,
				Requested: c.Quantity,
				Available: inv.StockQuantity,
			})
			continue
		}

		p, ok := byID[c.ProductID]
		if !ok {
			continue
		}

		item, err := order.NewDraftItem(c.ProductID, c.ProductName, c.Quantity, p.Price)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, shortages
}

// catalogView projeta o catálogo do tenant na forma enviada ao extrator
func catalogView(products []product.Product) []capability.CatalogItem {
	catalog := make([]capability.CatalogItem, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, capability.CatalogItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
		})
	}
	return catalog
}

// draftItemLines formata os itens do rascunho para o resumo do pedido
func draftItemLines(items []order.DraftItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("• %s x%d - %s c/u = %s",
			item.ProductName, item.Quantity,
			formatMoney(item.UnitPrice), formatMoney(item.ItemTotal)))
	}
	return lines
}

// shortageLines formata os itens recusados por estoque insuficiente
func shortageLines(shortages []stockShortage) []string {
	lines := make([]string, 0, len(shortages))
	for _, s := range shortages {
		if s.Available > 0 {
			lines = append(lines, fmt.Sprintf(
				"- %s: You requested %d, but we only have %d available",
				s.Name, s.Requested, s.Available))
		} else {
			lines = append(lines, fmt.Sprintf("- %s: Currently out of stock", s.Name))
		}
	}
	return lines
}

// orderGreeting monta a saudação quando a intenção é de pedido mas não há
// mensagem para interpretar
func orderGreeting(st *State) string {
	uc := st.UserContext
	if uc != nil && uc.FirstName != "" && uc.IsReturningCustomer && len(uc.RecentOrders) > 0 {
		return fmt.Sprintf("¡Hola %s! Me alegra verte de nuevo. "+
			"¿Te gustaría repetir tu último pedido o prefieres algo diferente?", uc.FirstName)
	}
	if uc != nil && uc.FirstName != "" {
		return fmt.Sprintf("¡Hola %s! ¿Qué te gustaría pedir hoy?", uc.FirstName)
	}
	return "I'm here to help with your order! What would you like to order?"
}

// capitalize põe a primeira letra em maiúscula (nomes de dia em inglês)
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
