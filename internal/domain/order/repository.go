package order

import (
	"context"
	"time"
)

// Repository define as operações de persistência de pedidos
type Repository interface {
	// Create persiste o pedido e seus itens em uma única transação
	Create(ctx context.Context, o *Order) error

	// ListByConversations retorna pedidos das conversas informadas, mais
	// recentes primeiro, com seus itens carregados
	ListByConversations(ctx context.Context, conversationIDs []string, limit int) ([]Order, error)

	// CountBetween conta pedidos do tenant criados no intervalo [from, to)
	CountBetween(ctx context.Context, tenantID string, from, to time.Time) (int, error)
}
