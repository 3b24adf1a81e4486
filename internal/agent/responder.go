package agent

import (
	"context"
	"fmt"
)

// respond é o último estágio do pipeline. Garante que o turno nunca termina
// sem resposta: quando nenhum handler preencheu FinalResponse, compõe um
// fallback por intenção com a personalização disponível.
func (e *Engine) respond(_ context.Context, st *State) {
	if st.FinalResponse != "" {
		return
	}

	userName := st.UserName()
	isReturning := st.UserContext != nil && st.UserContext.IsReturningCustomer

	switch st.Intent {
	case IntentOther:
		switch {
		case userName != "" && isReturning:
			st.FinalResponse = fmt.Sprintf(
				"¡Hola de nuevo, %s! 👋 Me alegra verte. Puedo ayudarte con:\n"+
					"• Preguntas sobre horarios, ubicación, menú y métodos de pago\n"+
					"• Realizar pedidos de nuestros productos\n"+
					"• Recibir tus comentarios y reseñas\n\n"+
					"¿En qué puedo ayudarte hoy?", userName)
		case userName != "":
			st.FinalResponse = fmt.Sprintf(
				"¡Hola %s! 👋 Bienvenido/a. Puedo ayudarte con:\n"+
					"• Preguntas sobre horarios, ubicación, menú y métodos de pago\n"+
					"• Realizar pedidos de nuestros productos\n"+
					"• Recibir tus comentarios y reseñas\n\n"+
					"¿En qué puedo ayudarte hoy?", userName)
		default:
			st.FinalResponse = "I'm here to help! I can assist you with:\n" +
				"• Questions about our hours, location, menu, and payment methods\n" +
				"• Placing orders for our products\n" +
				"• Handling feedback and reviews\n\n" +
				"How can I assist you today?"
		}

	case IntentFAQ:
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"¡Estoy aquí para responder tus preguntas, %s! "+
					"Pregúntame sobre horarios, ubicación, menú o lo que necesites.", userName)
		} else {
			st.FinalResponse = "I'm here to answer your questions! " +
				"Feel free to ask about our hours, location, menu, or anything else."
		}

	case IntentOrderCreate, IntentOrderUpdate:
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"¡Con gusto te ayudo con tu pedido, %s! "+
					"Dime qué te gustaría ordenar.", userName)
		} else {
			st.FinalResponse = "I'd be happy to help you with your order! " +
				"Please tell me what you'd like to order."
		}

	case IntentComplaint, IntentReview:
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"Gracias por compartir tu opinión, %s. "+
					"Tu retroalimentación es valiosa y nos ayuda a mejorar.", userName)
		} else {
			st.FinalResponse = "Thank you for sharing your feedback with us. " +
				"Your input is valuable and helps us improve our service."
		}

	default:
		if userName != "" {
			st.FinalResponse = fmt.Sprintf("¡Hola %s! ¿En qué puedo ayudarte hoy?", userName)
		} else {
			st.FinalResponse = "I'm here to help! How can I assist you today?"
		}
	}
}
