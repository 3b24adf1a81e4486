package agent

import (
	"context"
	"fmt"
	"strings"
)

// faqTopK é quantos trechos de conhecimento a busca recupera por pergunta
const faqTopK = 5

// noContextSentinel é o texto devolvido pelo retriever quando nada
// relevante foi encontrado
const noContextSentinel = "No relevant information found."

// handleFAQ responde perguntas gerais com busca na base de conhecimento
// enriquecida com dados do negócio e do cliente. A redação final é
// delegada ao serviço de resposta; se ele falhar, o contexto recuperado é
// devolvido de forma direta em vez de perder o turno.
func (e *Engine) handleFAQ(ctx context.Context, st *State) error {
	message := st.LastMessage()
	if message == "" {
		st.FinalResponse = "I'm here to help! What would you like to know?"
		return nil
	}

	if st.TenantID == "" {
		st.FinalResponse = "I'm sorry, I couldn't identify your business. Please try again."
		return nil
	}

	st.Context = e.retriever.Retrieve(ctx, st.TenantID, message, faqTopK)

	enriched := e.buildEnrichedContext(ctx, st)
	prompt := buildFAQPrompt(st, message, enriched)

	capCtx, cancel := e.capContext(ctx)
	reply, err := e.caps.Responder.Respond(capCtx, "", prompt)
	cancel()

	if err != nil || strings.TrimSpace(reply) == "" {
		e.logger.Warn("faq response generation failed, using retrieved context",
			"conversation_id", st.ConversationID, "error", err)
		st.FinalResponse = faqFallbackReply(st)
		return nil
	}

	st.FinalResponse = strings.TrimSpace(reply)
	return nil
}

// buildEnrichedContext monta o bloco de inteligência de negócio injetado no
// prompt: horas de pico, histórico e preferências do cliente. Falhas de
// consulta apenas encolhem o bloco.
func (e *Engine) buildEnrichedContext(ctx context.Context, st *State) string {
	var b strings.Builder

	if peaks, err := e.store.Stats.PeakHours(ctx, st.TenantID, 2); err == nil && len(peaks) > 0 {
		var hours []string
		for _, p := range peaks {
			hours = append(hours, fmt.Sprintf("%d:00", p.Hour))
		}
		b.WriteString("\nINFORMACIÓN DEL NEGOCIO:\n")
		b.WriteString(fmt.Sprintf("- Horas pico: %s\n", strings.Join(hours, ", ")))
	}

	uc := st.UserContext
	if uc == nil {
		return b.String()
	}

	if len(uc.RecentOrders) > 0 {
		b.WriteString("\nHISTORIAL DEL CLIENTE:\n")
		for i, o := range uc.RecentOrders {
			if i >= 3 {
				break
			}
			b.WriteString(fmt.Sprintf("- Pedido anterior: %d items (%s)\n",
				len(o.Items), formatMoney(o.TotalAmount)))
		}
	}

	if len(uc.Preferences) > 0 {
		b.WriteString("\nPREFERENCIAS CONOCIDAS DEL CLIENTE:\n")
		for i, p := range uc.Preferences {
			if i >= 3 {
				break
			}
			b.WriteString(fmt.Sprintf("- %s: %s (confianza: %.0f%%)\n",
				p.Type, p.Value, p.Confidence*100))
		}
	}

	return b.String()
}

// buildFAQPrompt monta o prompt do serviço de resposta com o contexto
// recuperado, a inteligência de negócio e a personalização do cliente
func buildFAQPrompt(st *State, question, enriched string) string {
	var personalization strings.Builder
	if uc := st.UserContext; uc != nil {
		if uc.FullName != "" {
			personalization.WriteString("\nNombre del cliente: " + uc.FullName)
		}
		if uc.IsReturningCustomer {
			personalization.WriteString("\nEs un cliente recurrente - sé cálido y reconoce su lealtad.")
		}
	}

	addressLine := ""
	if name := st.UserName(); name != "" {
		addressLine = "Dirígete al cliente por su nombre: " + name + "\n"
	}

	return fmt.Sprintf(`Eres un asistente de atención al cliente amigable e inteligente.

CAPACIDADES ESPECIALES:
- Puedes RECOMENDAR productos basándote en los datos reales de ventas y popularidad
- Puedes PERSONALIZAR respuestas según el historial del cliente
- Puedes usar INSIGHTS del negocio para dar mejores respuestas

REGLAS:
1. Responde en el MISMO IDIOMA que el usuario (español si escribe en español)
2. Si el usuario pide una recomendación, USA los datos de productos más pedidos
3. Si conoces preferencias del cliente, menciónalas naturalmente
4. Sé conciso pero informativo

%sCONTEXTO DE FAQs Y PRODUCTOS:
%s

INTELIGENCIA DE NEGOCIO (usa esto para recomendar):
%s%s

PREGUNTA DEL USUARIO: %s

Responde de forma útil, amigable y personalizada. Si pide recomendación, recomienda basándote en los datos reales:`,
		addressLine, st.Context, enriched, personalization.String(), question)
}

// faqFallbackReply devolve o contexto recuperado de forma direta quando o
// serviço de resposta falha; sem contexto útil, cai na desculpa genérica
func faqFallbackReply(st *State) string {
	if st.Context != "" && st.Context != noContextSentinel {
		return "Here's what I found that may help:\n\n" + st.Context
	}
	return "I apologize, but I encountered an issue processing your question. " +
		"Please try again or contact us directly for assistance."
}
