package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/agente-atendimento/internal/domain/review"
)

// ReviewRepository implementa a interface review.Repository
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository cria uma nova instância de ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) review.Repository {
	return &ReviewRepository{db: db}
}

// Create implementa review.Repository.Create
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, tenant_id, conversation_id, rating, comment, source, requires_attention, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rv.ID, rv.TenantID, rv.ConversationID, rv.Rating, rv.Comment, rv.Source, rv.RequiresAttention, rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar avaliação: %w", err)
	}
	return nil
}

// ListRequiringAttention implementa review.Repository.ListRequiringAttention
func (r *ReviewRepository) ListRequiringAttention(ctx context.Context, tenantID string, limit int) ([]review.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, conversation_id, rating, comment, source, requires_attention, created_at
		FROM reviews
		WHERE tenant_id = $1 AND requires_attention = true
		ORDER BY created_at DESC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar avaliações: %w", err)
	}
	defer rows.Close()

	var reviews []review.Review
	for rows.Next() {
		var rv review.Review
		if err := rows.Scan(&rv.ID, &rv.TenantID, &rv.ConversationID, &rv.Rating, &rv.Comment, &rv.Source, &rv.RequiresAttention, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler avaliação: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return reviews, nil
}
