package agent

import (
	"context"
)

// activeOrderHint é injetado no prompt de classificação quando a conversa
// carrega um rascunho de pedido com itens
const activeOrderHint = "User has an ACTIVE ORDER in progress with items already selected."

// classify determina a intenção do turno e atualiza o contexto da conversa.
// A classificação nunca falha o turno: erro ou rótulo inválido do serviço
// viram "other" e o pipeline segue.
func (e *Engine) classify(ctx context.Context, st *State) {
	hasActiveOrder := st.HasActiveOrder()
	st.ConversationContext.HasActiveOrder = hasActiveOrder

	message := st.LastMessage()
	if message == "" {
		st.Intent = IntentOther
		st.ConversationContext.LastIntent = st.Intent
		return
	}

	hint := ""
	if hasActiveOrder {
		hint = activeOrderHint
	}

	capCtx, cancel := e.capContext(ctx)
	label, err := e.caps.Classifier.Classify(capCtx, message, hint)
	cancel()
	if err != nil {
		e.logger.Warn("intent classification failed, falling back to other",
			"conversation_id", st.ConversationID, "error", err)
		label = string(IntentOther)
	}

	intent := NormalizeIntent(label)

	// Sobrescritas contextuais determinísticas: com um rascunho ativo, todo
	// pedido novo é na verdade uma alteração, e perguntas de cardápio são
	// tratadas como intenção de adicionar itens
	if hasActiveOrder {
		if intent == IntentOrderCreate {
			intent = IntentOrderUpdate
		}
		if intent == IntentFAQ && isMenuRequest(message) {
			intent = IntentOrderUpdate
		}
	}

	st.Intent = intent
	st.ConversationContext.LastIntent = intent

	e.logger.Debug("intent classified",
		"conversation_id", st.ConversationID,
		"intent", string(intent),
		"has_active_order", hasActiveOrder)
}
