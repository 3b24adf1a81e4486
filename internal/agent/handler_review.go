package agent

import (
	"context"
	"fmt"

	"github.com/hugohenrick/agente-atendimento/internal/capability"
	"github.com/hugohenrick/agente-atendimento/internal/domain/review"
)

// handleReview processa avaliações e reclamações: analisa o sentimento da
// mensagem, persiste a avaliação e responde de acordo com a faixa da nota.
// Reclamações e notas baixas são marcadas para atenção da equipe.
func (e *Engine) handleReview(ctx context.Context, st *State) error {
	userName := st.UserName()
	message := st.LastMessage()

	if message == "" {
		st.FinalResponse = "Thank you for your feedback! How can I help you?"
		return nil
	}

	if st.TenantID == "" || st.ConversationID == "" {
		st.FinalResponse = "I'm sorry, I couldn't process your feedback. Please try again."
		return nil
	}

	analysis := e.analyzeSentiment(ctx, message)

	requiresAttention := analysis.IsComplaint || analysis.Rating <= 2

	r, err := review.NewReview(st.TenantID, st.ConversationID, analysis.Rating, message, "chat", requiresAttention)
	if err != nil {
		return fmt.Errorf("erro ao montar avaliação: %w", err)
	}

	if err := e.store.Reviews.Create(ctx, r); err != nil {
		e.logger.Error("review persistence failed",
			"conversation_id", st.ConversationID, "error", err)
		st.FinalResponse = "Thank you for your feedback. I apologize, but I encountered an issue recording it. " +
			"Please feel free to share your thoughts again, and we'll make sure they're heard."
		return nil
	}

	e.logger.Info("review recorded",
		"tenant_id", st.TenantID,
		"conversation_id", st.ConversationID,
		"rating", r.Rating,
		"requires_attention", r.RequiresAttention)

	switch {
	case requiresAttention:
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"Lamento mucho escuchar esto, %s. Tu opinión es muy importante para nosotros "+
					"y he registrado tu queja para que nuestro equipo la atienda de inmediato. "+
					"Nos tomamos estos asuntos muy en serio y trabajaremos para resolver tus inquietudes. "+
					"¿Hay algo más en lo que pueda ayudarte?", userName)
		} else {
			st.FinalResponse = "I'm truly sorry to hear about your experience. Your feedback is very important to us, " +
				"and I've recorded your complaint for immediate attention from our team. " +
				"We take these matters seriously and will work to address your concerns. " +
				"Is there anything else I can help you with right now?"
		}
	case analysis.Rating >= 4:
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"¡Muchísimas gracias por tus palabras, %s! 🌟 Nos alegra mucho saber que tuviste "+
					"una excelente experiencia. Tu opinión significa mucho para nosotros y motiva a nuestro equipo "+
					"a seguir dando lo mejor. ¡Esperamos verte pronto de nuevo!", userName)
		} else {
			st.FinalResponse = "Thank you so much for your kind words! We're thrilled to hear you had a great experience. " +
				"Your feedback means a lot to us and motivates our team to keep delivering excellent service. " +
				"We look forward to serving you again soon!"
		}
	default:
		if userName != "" {
			st.FinalResponse = fmt.Sprintf(
				"Gracias por compartir tu opinión, %s. Apreciamos que te hayas tomado el tiempo "+
					"de contarnos sobre tu experiencia. Si hay algo específico que podamos mejorar o en lo que "+
					"podamos ayudarte, no dudes en decírnoslo.", userName)
		} else {
			st.FinalResponse = "Thank you for sharing your feedback with us. We appreciate you taking the time to let us know " +
				"about your experience. If there's anything specific we can improve or help you with, " +
				"please don't hesitate to let us know!"
		}
	}
	return nil
}

// analyzeSentiment chama o serviço de análise com prazo, caindo para o
// resultado neutro em qualquer falha
func (e *Engine) analyzeSentiment(ctx context.Context, message string) capability.Analysis {
	capCtx, cancel := e.capContext(ctx)
	defer cancel()

	analysis, err := e.caps.Sentiment.Analyze(capCtx, message)
	if err != nil {
		e.logger.Warn("sentiment analysis failed, using neutral", "error", err)
		return capability.NeutralAnalysis()
	}

	if analysis.Rating < 1 {
		analysis.Rating = 1
	} else if analysis.Rating > 5 {
		analysis.Rating = 5
	}
	return analysis
}
