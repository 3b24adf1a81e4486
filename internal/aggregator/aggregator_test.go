package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

const (
	aggTenantID = "11111111-1111-1111-1111-111111111111"
	aggPizzaID  = "33333333-3333-3333-3333-333333333333"
	aggColaID   = "44444444-4444-4444-4444-444444444444"
)

type memTenantRepo struct{ tenants []tenant.Tenant }

func (m *memTenantRepo) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			return &m.tenants[i], nil
		}
	}
	return nil, nil
}
func (m *memTenantRepo) ListActive(_ context.Context) ([]tenant.Tenant, error) {
	return m.tenants, nil
}
func (m *memTenantRepo) Create(_ context.Context, t *tenant.Tenant) error {
	m.tenants = append(m.tenants, *t)
	return nil
}

type memConvRepo struct {
	userMessages   map[int]int // hora -> mensagens de clientes
	intentMessages []conversation.Message
}

func (m *memConvRepo) Create(_ context.Context, _ *conversation.Conversation) error { return nil }
func (m *memConvRepo) FindByID(_ context.Context, _ string) (*conversation.Conversation, error) {
	return nil, conversation.ErrNotFound
}
func (m *memConvRepo) UpdateMetadata(_ context.Context, _ string, _ conversation.Metadata) error {
	return nil
}
func (m *memConvRepo) AddMessage(_ context.Context, _ *conversation.Message) error { return nil }
func (m *memConvRepo) ListMessages(_ context.Context, _ string) ([]conversation.Message, error) {
	return nil, nil
}
func (m *memConvRepo) ListByUser(_ context.Context, _, _ string, _ int) ([]conversation.Conversation, error) {
	return nil, nil
}
func (m *memConvRepo) ListMessagesByIntent(_ context.Context, _ string, _ []string) ([]conversation.Message, error) {
	return m.intentMessages, nil
}
func (m *memConvRepo) ListUserMessages(_ context.Context, _ string) ([]conversation.Message, error) {
	return nil, nil
}
func (m *memConvRepo) CountUserMessagesBetween(_ context.Context, _ string, from, _ time.Time) (int, error) {
	return m.userMessages[from.Hour()], nil
}
func (m *memConvRepo) ListMessagesByIntentBetween(_ context.Context, _ string, _ []string, _, _ time.Time) ([]conversation.Message, error) {
	return m.intentMessages, nil
}

type memOrderRepo struct{ counts map[int]int }

func (m *memOrderRepo) Create(_ context.Context, _ *order.Order) error { return nil }
func (m *memOrderRepo) ListByConversations(_ context.Context, _ []string, _ int) ([]order.Order, error) {
	return nil, nil
}
func (m *memOrderRepo) CountBetween(_ context.Context, _ string, from, _ time.Time) (int, error) {
	return m.counts[from.Hour()], nil
}

type memProductRepo struct{ products []product.Product }

func (m *memProductRepo) ListActive(_ context.Context, _ string) ([]product.Product, error) {
	return m.products, nil
}
func (m *memProductRepo) FindInventory(_ context.Context, _, _ string) (*product.InventoryItem, error) {
	return nil, nil
}
func (m *memProductRepo) Create(_ context.Context, _ *product.Product) error          { return nil }
func (m *memProductRepo) UpsertInventory(_ context.Context, _ *product.InventoryItem) error {
	return nil
}

type memStatsRepo struct {
	upserts map[string]*stats.TenantStat
	listed  []stats.TenantStat
	signals []*stats.DemandSignal
}

func statKey(s *stats.TenantStat) string {
	return s.TenantID + s.Date.Format("2006-01-02") + string(rune('A'+s.Hour))
}

func (m *memStatsRepo) Upsert(_ context.Context, s *stats.TenantStat) error {
	if m.upserts == nil {
		m.upserts = map[string]*stats.TenantStat{}
	}
	m.upserts[statKey(s)] = s
	return nil
}
func (m *memStatsRepo) ListByTenant(_ context.Context, _ string, _ int) ([]stats.TenantStat, error) {
	return m.listed, nil
}
func (m *memStatsRepo) PeakHours(_ context.Context, _ string, _ int) ([]stats.HourCount, error) {
	return nil, nil
}
func (m *memStatsRepo) ListSignals(_ context.Context, _ int, _ float64) ([]stats.DemandSignal, error) {
	var out []stats.DemandSignal
	for _, s := range m.signals {
		out = append(out, *s)
	}
	return out, nil
}
func (m *memStatsRepo) CreateSignal(_ context.Context, s *stats.DemandSignal) error {
	m.signals = append(m.signals, s)
	return nil
}

func newTestAggregator() (*Aggregator, *memConvRepo, *memOrderRepo, *memStatsRepo, *memTenantRepo) {
	tenants := &memTenantRepo{tenants: []tenant.Tenant{
		{ID: aggTenantID, Name: "La Pizzería", Type: tenant.TypeRestaurant, IsActive: true},
	}}
	convs := &memConvRepo{userMessages: map[int]int{}}
	orders := &memOrderRepo{counts: map[int]int{}}
	products := &memProductRepo{products: []product.Product{
		{ID: aggPizzaID, TenantID: aggTenantID, Name: "Pizza Margarita", Category: "comidas", IsActive: true},
		{ID: aggColaID, TenantID: aggTenantID, Name: "Coca Cola", Category: "bebidas", IsActive: true},
	}}
	statsRepo := &memStatsRepo{}

	agg := NewAggregator(tenants, convs, orders, products, statsRepo, logger.NewNopLogger())
	return agg, convs, orders, statsRepo, tenants
}

func TestAggregateHourCountsAndTopProduct(t *testing.T) {
	agg, convs, orders, statsRepo, _ := newTestAggregator()
	convs.userMessages[12] = 7
	orders.counts[12] = 3
	convs.intentMessages = []conversation.Message{
		{Text: "quiero una pizza margarita", Intent: "order_create"},
		{Text: "la PIZZA MARGARITA tiene queso?", Intent: "faq"},
		{Text: "dame una coca cola", Intent: "order_create"},
	}

	date := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	stat, err := agg.AggregateHour(context.Background(), aggTenantID, date, 12)

	require.NoError(t, err)
	assert.Equal(t, 7, stat.InteractionsCount)
	assert.Equal(t, 3, stat.OrdersCount)
	assert.Equal(t, aggPizzaID, stat.TopProductID, "pizza tem duas menções, coca uma")
	require.Len(t, statsRepo.upserts, 1)
}

func TestAggregateHourRejectsInvalidHour(t *testing.T) {
	agg, _, _, _, _ := newTestAggregator()

	_, err := agg.AggregateHour(context.Background(), aggTenantID, time.Now(), 24)
	assert.ErrorIs(t, err, stats.ErrInvalidHour)
}

func TestAggregateHourIsIdempotent(t *testing.T) {
	agg, convs, _, statsRepo, _ := newTestAggregator()
	convs.userMessages[9] = 2

	date := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	_, err := agg.AggregateHour(context.Background(), aggTenantID, date, 9)
	require.NoError(t, err)

	convs.userMessages[9] = 5
	stat, err := agg.AggregateHour(context.Background(), aggTenantID, date, 9)
	require.NoError(t, err)

	assert.Equal(t, 5, stat.InteractionsCount)
	assert.Len(t, statsRepo.upserts, 1, "mesma janela não duplica registro")
}

func TestAggregateRecentCoversRequestedWindow(t *testing.T) {
	agg, _, _, statsRepo, _ := newTestAggregator()
	agg.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	}

	records := agg.AggregateRecent(context.Background(), aggTenantID, 24)

	assert.Len(t, records, 24)
	assert.Len(t, statsRepo.upserts, 24)
}

func TestGenerateNetworkInsightsProducesPeakHourSignal(t *testing.T) {
	agg, _, _, statsRepo, _ := newTestAggregator()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return now }

	// quase toda a atividade concentrada às 12h
	statsRepo.listed = []stats.TenantStat{
		{TenantID: aggTenantID, Date: now.AddDate(0, 0, -1), Hour: 12, InteractionsCount: 50, TopProductID: aggPizzaID},
		{TenantID: aggTenantID, Date: now.AddDate(0, 0, -2), Hour: 12, InteractionsCount: 40, TopProductID: aggPizzaID},
		{TenantID: aggTenantID, Date: now.AddDate(0, 0, -1), Hour: 9, InteractionsCount: 5},
	}

	signals, err := agg.GenerateNetworkInsights(context.Background(), 7, 0.6)

	require.NoError(t, err)
	require.NotEmpty(t, signals)

	found := false
	for _, s := range signals {
		if s.Metadata["pattern_type"] == "business_type_peak_hour" {
			found = true
			assert.Contains(t, s.Description, "restaurant")
			assert.Contains(t, s.Description, "12:00-13:00")
			assert.GreaterOrEqual(t, s.ConfidenceScore, 0.6)
			assert.LessOrEqual(t, s.ConfidenceScore, 1.0)
		}
		// sinais de rede não identificam tenants individuais
		assert.NotContains(t, s.Description, aggTenantID)
		assert.NotContains(t, s.Metadata, "tenant_id")
	}
	assert.True(t, found, "esperava sinal de hora de pico por tipo de negócio")
}

func TestGenerateNetworkInsightsRespectsConfidenceFloor(t *testing.T) {
	agg, _, _, statsRepo, _ := newTestAggregator()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return now }

	// atividade uniformemente distribuída: nenhuma hora domina
	var listed []stats.TenantStat
	for h := 0; h < 24; h++ {
		listed = append(listed, stats.TenantStat{
			TenantID: aggTenantID, Date: now.AddDate(0, 0, -1), Hour: h, InteractionsCount: 10,
		})
	}
	statsRepo.listed = listed

	signals, err := agg.GenerateNetworkInsights(context.Background(), 7, 0.6)

	require.NoError(t, err)
	for _, s := range signals {
		assert.NotEqual(t, "business_type_peak_hour", s.Metadata["pattern_type"],
			"distribuição uniforme não deve gerar pico com confiança >= 0.6")
	}
}

func TestGenerateNetworkInsightsIgnoresStatsOutsideWindow(t *testing.T) {
	agg, _, _, statsRepo, _ := newTestAggregator()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return now }

	statsRepo.listed = []stats.TenantStat{
		{TenantID: aggTenantID, Date: now.AddDate(0, 0, -30), Hour: 12, InteractionsCount: 100},
	}

	signals, err := agg.GenerateNetworkInsights(context.Background(), 7, 0.6)

	require.NoError(t, err)
	assert.Empty(t, signals)
}
