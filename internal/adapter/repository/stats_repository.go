package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
)

// StatsRepository implementa a interface stats.Repository
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository cria uma nova instância de StatsRepository
func NewStatsRepository(db *pgxpool.Pool) stats.Repository {
	return &StatsRepository{db: db}
}

// Upsert implementa stats.Repository.Upsert. A chave natural é
// (tenant_id, date, hour); reprocessar uma janela sobrescreve os contadores.
func (r *StatsRepository) Upsert(ctx context.Context, s *stats.TenantStat) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tenant_stats (id, tenant_id, date, hour, interactions_count, orders_count, top_product_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)
		ON CONFLICT (tenant_id, date, hour)
		DO UPDATE SET
			interactions_count = EXCLUDED.interactions_count,
			orders_count = EXCLUDED.orders_count,
			top_product_id = EXCLUDED.top_product_id
	`, s.ID, s.TenantID, s.Date, s.Hour, s.InteractionsCount, s.OrdersCount, s.TopProductID)
	if err != nil {
		return fmt.Errorf("erro ao gravar estatística: %w", err)
	}
	return nil
}

// ListByTenant implementa stats.Repository.ListByTenant
func (r *StatsRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]stats.TenantStat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, date, hour, interactions_count, orders_count, COALESCE(top_product_id::text, '')
		FROM tenant_stats
		WHERE tenant_id = $1
		ORDER BY date DESC, hour DESC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar estatísticas: %w", err)
	}
	defer rows.Close()

	var out []stats.TenantStat
	for rows.Next() {
		var s stats.TenantStat
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Date, &s.Hour, &s.InteractionsCount, &s.OrdersCount, &s.TopProductID); err != nil {
			return nil, fmt.Errorf("erro ao ler estatística: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return out, nil
}

// PeakHours implementa stats.Repository.PeakHours
func (r *StatsRepository) PeakHours(ctx context.Context, tenantID string, limit int) ([]stats.HourCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT hour, SUM(interactions_count) AS total
		FROM tenant_stats
		WHERE tenant_id = $1
		GROUP BY hour
		ORDER BY total DESC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular horas de pico: %w", err)
	}
	defer rows.Close()

	var peaks []stats.HourCount
	for rows.Next() {
		var hc stats.HourCount
		if err := rows.Scan(&hc.Hour, &hc.Count); err != nil {
			return nil, fmt.Errorf("erro ao ler hora de pico: %w", err)
		}
		peaks = append(peaks, hc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return peaks, nil
}

// ListSignals implementa stats.Repository.ListSignals
func (r *StatsRepository) ListSignals(ctx context.Context, limit int, minConfidence float64) ([]stats.DemandSignal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, description, confidence_score, metadata, created_at
		FROM demand_signals
		WHERE confidence_score >= $1
		ORDER BY confidence_score DESC, created_at DESC
		LIMIT $2
	`, minConfidence, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar sinais de demanda: %w", err)
	}
	defer rows.Close()

	var signals []stats.DemandSignal
	for rows.Next() {
		var s stats.DemandSignal
		var metadataJSON []byte
		if err := rows.Scan(&s.ID, &s.Description, &s.ConfidenceScore, &metadataJSON, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler sinal de demanda: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &s.Metadata); err != nil {
				return nil, fmt.Errorf("erro ao decodificar metadata do sinal: %w", err)
			}
		}
		signals = append(signals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return signals, nil
}

// CreateSignal implementa stats.Repository.CreateSignal
func (r *StatsRepository) CreateSignal(ctx context.Context, s *stats.DemandSignal) error {
	metadataJSON, err := json.Marshal(s.Metadata)
	if err != nil {
		return fmt.Errorf("erro ao serializar metadata do sinal: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO demand_signals (id, description, confidence_score, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.Description, s.ConfidenceScore, metadataJSON, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar sinal de demanda: %w", err)
	}
	return nil
}
