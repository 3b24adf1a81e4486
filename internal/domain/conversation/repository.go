package conversation

import (
	"context"
	"time"
)

// Repository define as operações de persistência de conversas e mensagens.
// As consultas por tenant existem para alimentar as estatísticas offline.
type Repository interface {
	// Create persiste uma nova conversa
	Create(ctx context.Context, c *Conversation) error

	// FindByID busca uma conversa pelo ID, incluindo metadata
	FindByID(ctx context.Context, id string) (*Conversation, error)

	// UpdateMetadata persiste a metadata da conversa (rascunho de pedido e
	// última intenção) ao fim de cada turno
	UpdateMetadata(ctx context.Context, id string, metadata Metadata) error

	// AddMessage persiste uma mensagem da conversa
	AddMessage(ctx context.Context, m *Message) error

	// ListMessages retorna as mensagens da conversa em ordem cronológica
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)

	// ListByUser retorna conversas recentes de um usuário, opcionalmente
	// filtradas por tenant
	ListByUser(ctx context.Context, userID, tenantID string, limit int) ([]Conversation, error)

	// ListMessagesByIntent retorna mensagens do tenant com as intenções
	// informadas
	ListMessagesByIntent(ctx context.Context, tenantID string, intents []string) ([]Message, error)

	// ListUserMessages retorna todas as mensagens enviadas por clientes do
	// tenant
	ListUserMessages(ctx context.Context, tenantID string) ([]Message, error)

	// CountUserMessagesBetween conta mensagens de clientes do tenant no
	// intervalo [from, to)
	CountUserMessagesBetween(ctx context.Context, tenantID string, from, to time.Time) (int, error)

	// ListMessagesByIntentBetween retorna mensagens do tenant com as
	// intenções informadas no intervalo [from, to)
	ListMessagesByIntentBetween(ctx context.Context, tenantID string, intents []string, from, to time.Time) ([]Message, error)
}
