package stats

import "context"

// Repository define as operações de persistência das estatísticas agregadas
type Repository interface {
	// Upsert insere ou atualiza a estatística do tenant para (date, hour)
	Upsert(ctx context.Context, s *TenantStat) error

	// ListByTenant retorna estatísticas do tenant, mais recentes primeiro
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]TenantStat, error)

	// PeakHours retorna os pares hora/interações do tenant ordenados por
	// volume de interações
	PeakHours(ctx context.Context, tenantID string, limit int) ([]HourCount, error)

	// ListSignals retorna sinais de demanda com confiança mínima, mais
	// confiáveis e recentes primeiro
	ListSignals(ctx context.Context, limit int, minConfidence float64) ([]DemandSignal, error)

	// CreateSignal persiste um novo sinal de demanda
	CreateSignal(ctx context.Context, s *DemandSignal) error
}
