package conversation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
)

var (
	ErrNotFound     = errors.New("conversa não encontrada")
	ErrEmptyMessage = errors.New("texto da mensagem não pode ser vazio")
)

// Sender identifica o autor de uma mensagem
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Metadata guarda o estado que precisa sobreviver entre turnos de uma
// conversa processada de forma stateless: o rascunho de pedido e a última
// intenção classificada. Persistida como JSONB na conversa.
type Metadata struct {
	OrderDraft *order.Draft `json:"order_draft,omitempty"`
	LastIntent string       `json:"last_intent,omitempty"`
}

// Conversation representa uma sessão multi-turno de um cliente com o agente
type Conversation struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	UserID     string     `json:"user_id,omitempty"`
	CustomerID string     `json:"customer_id,omitempty"`
	Channel    string     `json:"channel"`
	Metadata   Metadata   `json:"metadata"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// NewConversation cria uma nova conversa para o tenant
func NewConversation(tenantID, userID, customerID, channel string) *Conversation {
	if channel == "" {
		channel = "web"
	}
	return &Conversation{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		UserID:     userID,
		CustomerID: customerID,
		Channel:    channel,
		StartedAt:  time.Now(),
	}
}

// Message representa uma mensagem trocada em uma conversa
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         Sender    `json:"sender"`
	Text           string    `json:"text"`
	Intent         string    `json:"intent,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMessage cria uma mensagem de uma conversa
func NewMessage(conversationID string, sender Sender, text, intent string) (*Message, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		Intent:         intent,
		CreatedAt:      time.Now(),
	}, nil
}
