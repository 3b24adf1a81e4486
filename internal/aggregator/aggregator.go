// Package aggregator calcula as estatísticas horárias por tenant e os
// sinais de demanda agregados da rede. Roda como job offline (cmd/statsjob),
// nunca no caminho de uma requisição de chat.
package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

// topProductIntents são as intenções cujas mensagens contam para o produto
// mais mencionado da hora
var topProductIntents = []string{"faq", "order_create"}

// Aggregator agrega interações, pedidos e menções de produto por
// (tenant, data, hora) na tabela de estatísticas
type Aggregator struct {
	tenants       tenant.Repository
	conversations conversation.Repository
	orders        order.Repository
	products      product.Repository
	stats         stats.Repository
	logger        logger.Logger
	now           func() time.Time
}

// NewAggregator cria o agregador de estatísticas
func NewAggregator(
	tenants tenant.Repository,
	conversations conversation.Repository,
	orders order.Repository,
	products product.Repository,
	statsRepo stats.Repository,
	log logger.Logger,
) *Aggregator {
	return &Aggregator{
		tenants:       tenants,
		conversations: conversations,
		orders:        orders,
		products:      products,
		stats:         statsRepo,
		logger:        log,
		now:           time.Now,
	}
}

// AggregateHour agrega as estatísticas de um tenant para uma data e hora.
// A operação é idempotente: reprocessar a mesma janela sobrescreve os
// contadores anteriores.
func (a *Aggregator) AggregateHour(ctx context.Context, tenantID string, date time.Time, hour int) (*stats.TenantStat, error) {
	stat, err := stats.NewTenantStat(tenantID, date, hour)
	if err != nil {
		return nil, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	from := day.Add(time.Duration(hour) * time.Hour)
	to := from.Add(time.Hour)

	interactions, err := a.conversations.CountUserMessagesBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar interações: %w", err)
	}
	stat.InteractionsCount = interactions

	orderCount, err := a.orders.CountBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar pedidos: %w", err)
	}
	stat.OrdersCount = orderCount

	topProduct, err := a.findTopProduct(ctx, tenantID, from, to)
	if err != nil {
		a.logger.Warn("top product lookup failed", "tenant_id", tenantID, "error", err)
	} else {
		stat.TopProductID = topProduct
	}

	if err := a.stats.Upsert(ctx, stat); err != nil {
		return nil, err
	}

	a.logger.Info("aggregated tenant stats",
		"tenant_id", tenantID,
		"date", day.Format("2006-01-02"),
		"hour", hour,
		"interactions", interactions,
		"orders", orderCount)
	return stat, nil
}

// AggregateRecent agrega as últimas hoursBack horas de um tenant. Falhas
// de janelas individuais são logadas e não interrompem as demais.
func (a *Aggregator) AggregateRecent(ctx context.Context, tenantID string, hoursBack int) []stats.TenantStat {
	var results []stats.TenantStat
	now := a.now().UTC()

	for i := 0; i < hoursBack; i++ {
		target := now.Add(-time.Duration(i) * time.Hour)
		stat, err := a.AggregateHour(ctx, tenantID, target, target.Hour())
		if err != nil {
			a.logger.Error("hourly aggregation failed",
				"tenant_id", tenantID,
				"date", target.Format("2006-01-02"),
				"hour", target.Hour(),
				"error", err)
			continue
		}
		results = append(results, *stat)
	}
	return results
}

// AggregateAllTenants agrega as últimas hoursBack horas de todos os tenants
// ativos
func (a *Aggregator) AggregateAllTenants(ctx context.Context, hoursBack int) error {
	tenants, err := a.tenants.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("erro ao listar tenants: %w", err)
	}

	for _, t := range tenants {
		records := a.AggregateRecent(ctx, t.ID, hoursBack)
		a.logger.Info("aggregated tenant", "tenant_id", t.ID, "records", len(records))
	}
	return nil
}

// findTopProduct encontra o produto mais mencionado nas mensagens de faq e
// pedido da janela, por casamento de substring com o nome do produto
func (a *Aggregator) findTopProduct(ctx context.Context, tenantID string, from, to time.Time) (string, error) {
	messages, err := a.conversations.ListMessagesByIntentBetween(ctx, tenantID, topProductIntents, from, to)
	if err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", nil
	}

	products, err := a.products.ListActive(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "", nil
	}

	mentions := make(map[string]int)
	for _, m := range messages {
		text := strings.ToLower(m.Text)
		for _, p := range products {
			if strings.Contains(text, strings.ToLower(p.Name)) {
				mentions[p.ID]++
			}
		}
	}

	top := ""
	best := 0
	for id, count := range mentions {
		if count > best || (count == best && id < top) {
			top = id
			best = count
		}
	}
	return top, nil
}
