package agent

import "context"

// handlerFunc processa um turno já classificado. Handlers mutam o estado e
// devolvem erro apenas para falhas internas; falhas de negócio viram texto
// de resposta.
type handlerFunc func(ctx context.Context, st *State) error

// routes monta a tabela fixa de roteamento por intenção. Complaint e review
// compartilham o handler de avaliação; "other" cai direto no compositor de
// respostas.
func (e *Engine) routes() map[Intent]handlerFunc {
	return map[Intent]handlerFunc{
		IntentFAQ:         e.handleFAQ,
		IntentOrderCreate: e.handleOrderCreate,
		IntentOrderUpdate: e.handleOrderUpdate,
		IntentComplaint:   e.handleReview,
		IntentReview:      e.handleReview,
		IntentOther:       e.handleOther,
	}
}

// route resolve o handler da intenção corrente, caindo em handleOther para
// qualquer intenção desconhecida
func (e *Engine) route(intent Intent) handlerFunc {
	if h, ok := e.handlers[intent]; ok {
		return h
	}
	return e.handleOther
}
