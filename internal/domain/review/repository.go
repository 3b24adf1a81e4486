package review

import "context"

// Repository define as operações de persistência de avaliações
type Repository interface {
	// Create persiste uma nova avaliação
	Create(ctx context.Context, r *Review) error

	// ListRequiringAttention retorna avaliações do tenant marcadas para
	// atenção da equipe, mais recentes primeiro
	ListRequiringAttention(ctx context.Context, tenantID string, limit int) ([]Review, error)
}
