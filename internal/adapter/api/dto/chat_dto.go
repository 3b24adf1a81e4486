package dto

import (
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
)

// ChatRequest é o corpo da requisição de um turno de conversa
type ChatRequest struct {
	TenantID       string `json:"tenant_id" binding:"required"`
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	Channel        string `json:"channel"`
	Message        string `json:"message" binding:"required"`
}

// ChatResponse é a resposta de um turno processado pelo agente.
// OrderSummary só é preenchido quando há um pedido em andamento.
type ChatResponse struct {
	ConversationID       string       `json:"conversation_id"`
	Response             string       `json:"response"`
	Intent               string       `json:"intent"`
	RequiresConfirmation bool         `json:"requires_confirmation"`
	OrderSummary         *order.Draft `json:"order_summary,omitempty"`
}
