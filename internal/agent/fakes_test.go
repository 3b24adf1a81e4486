package agent

import (
	"context"
	"errors"
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/capability"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
	"github.com/hugohenrick/agente-atendimento/internal/domain/review"
	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

// Fakes em memória dos repositórios e capacidades usados pelo motor nos
// testes. Comportamentos de falha são ligados por flags.

type fakeTenantRepo struct {
	tenants map[string]*tenant.Tenant
	findErr error
}

func (f *fakeTenantRepo) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tenants[id]
	if !ok {
		return nil, errors.New("tenant não encontrado")
	}
	return t, nil
}

func (f *fakeTenantRepo) ListActive(_ context.Context) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, t := range f.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTenantRepo) Create(_ context.Context, t *tenant.Tenant) error {
	f.tenants[t.ID] = t
	return nil
}

type fakeProductRepo struct {
	products  []product.Product
	inventory map[string]int
	listErr   error
}

func (f *fakeProductRepo) ListActive(_ context.Context, tenantID string) ([]product.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []product.Product
	for _, p := range f.products {
		if p.TenantID == tenantID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindInventory(_ context.Context, tenantID, productID string) (*product.InventoryItem, error) {
	qty, ok := f.inventory[productID]
	if !ok {
		return nil, nil
	}
	return &product.InventoryItem{
		TenantID:      tenantID,
		ProductID:     productID,
		StockQuantity: qty,
	}, nil
}

func (f *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) UpsertInventory(_ context.Context, item *product.InventoryItem) error {
	f.inventory[item.ProductID] = item.StockQuantity
	return nil
}

type fakeOrderRepo struct {
	created   []*order.Order
	createErr error
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) ListByConversations(_ context.Context, _ []string, _ int) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.created {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) CountBetween(_ context.Context, _ string, _, _ time.Time) (int, error) {
	return len(f.created), nil
}

type fakeReviewRepo struct {
	created   []*review.Review
	createErr error
}

func (f *fakeReviewRepo) Create(_ context.Context, r *review.Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, r)
	return nil
}

func (f *fakeReviewRepo) ListRequiringAttention(_ context.Context, _ string, _ int) ([]review.Review, error) {
	var out []review.Review
	for _, r := range f.created {
		if r.RequiresAttention {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeStatsRepo struct {
	peaks []stats.HourCount
}

func (f *fakeStatsRepo) Upsert(_ context.Context, _ *stats.TenantStat) error { return nil }

func (f *fakeStatsRepo) ListByTenant(_ context.Context, _ string, _ int) ([]stats.TenantStat, error) {
	return nil, nil
}

func (f *fakeStatsRepo) PeakHours(_ context.Context, _ string, limit int) ([]stats.HourCount, error) {
	if limit > len(f.peaks) {
		limit = len(f.peaks)
	}
	return f.peaks[:limit], nil
}

func (f *fakeStatsRepo) ListSignals(_ context.Context, _ int, _ float64) ([]stats.DemandSignal, error) {
	return nil, nil
}

func (f *fakeStatsRepo) CreateSignal(_ context.Context, _ *stats.DemandSignal) error { return nil }

type fakeClassifier struct {
	label string
	err   error
	hints []string
}

func (f *fakeClassifier) Classify(_ context.Context, _ string, hint string) (string, error) {
	f.hints = append(f.hints, hint)
	if f.err != nil {
		return "", f.err
	}
	return f.label, nil
}

type fakeExtractor struct {
	items []capability.CandidateItem
	err   error
}

func (f *fakeExtractor) ExtractItems(_ context.Context, _ []capability.CatalogItem, _ string) ([]capability.CandidateItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeSentiment struct {
	analysis capability.Analysis
	err      error
}

func (f *fakeSentiment) Analyze(_ context.Context, _ string) (capability.Analysis, error) {
	if f.err != nil {
		return capability.Analysis{}, f.err
	}
	return f.analysis, nil
}

type fakeResponder struct {
	reply string
	err   error
}

func (f *fakeResponder) Respond(_ context.Context, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeRetriever struct {
	context string
}

func (f *fakeRetriever) Retrieve(_ context.Context, _, _ string, _ int) string {
	if f.context == "" {
		return noContextSentinel
	}
	return f.context
}

// testHarness agrupa o motor e seus fakes para manipulação nos testes
type testHarness struct {
	engine     *Engine
	tenants    *fakeTenantRepo
	products   *fakeProductRepo
	orders     *fakeOrderRepo
	reviews    *fakeReviewRepo
	statsRepo  *fakeStatsRepo
	classifier *fakeClassifier
	extractor  *fakeExtractor
	sentiment  *fakeSentiment
	responder  *fakeResponder
	retriever  *fakeRetriever
}

const (
	testTenantID = "11111111-1111-1111-1111-111111111111"
	testConvID   = "22222222-2222-2222-2222-222222222222"
	testPizzaID  = "33333333-3333-3333-3333-333333333333"
	testColaID   = "44444444-4444-4444-4444-444444444444"
)

// newHarness monta um motor com um tenant aberto 24h, dois produtos com
// estoque e capacidades bem-sucedidas por padrão
func newHarness() *testHarness {
	h := &testHarness{
		tenants: &fakeTenantRepo{tenants: map[string]*tenant.Tenant{
			testTenantID: {
				ID:       testTenantID,
				Name:     "La Pizzería",
				Type:     tenant.TypeRestaurant,
				Timezone: "UTC",
				Config: tenant.Config{
					BusinessHours: tenant.BusinessHours{
						"monday":    "00:00-00:00",
						"tuesday":   "00:00-00:00",
						"wednesday": "00:00-00:00",
						"thursday":  "00:00-00:00",
						"friday":    "00:00-00:00",
						"saturday":  "00:00-00:00",
						"sunday":    "00:00-00:00",
					},
				},
				IsActive: true,
			},
		}},
		products: &fakeProductRepo{
			products: []product.Product{
				{ID: testPizzaID, TenantID: testTenantID, Name: "Pizza Margarita", Category: "comidas", Price: 12500, IsActive: true},
				{ID: testColaID, TenantID: testTenantID, Name: "Coca Cola", Category: "bebidas", Price: 3000, IsActive: true},
			},
			inventory: map[string]int{
				testPizzaID: 10,
				testColaID:  20,
			},
		},
		orders:     &fakeOrderRepo{},
		reviews:    &fakeReviewRepo{},
		statsRepo:  &fakeStatsRepo{},
		classifier: &fakeClassifier{label: "other"},
		extractor:  &fakeExtractor{},
		sentiment:  &fakeSentiment{analysis: capability.NeutralAnalysis()},
		responder:  &fakeResponder{reply: "Claro, nuestro horario es de 9 a 18."},
		retriever:  &fakeRetriever{},
	}

	store := Store{
		Tenants:  h.tenants,
		Products: h.products,
		Orders:   h.orders,
		Reviews:  h.reviews,
		Stats:    h.statsRepo,
	}
	caps := capability.Suite{
		Classifier: h.classifier,
		Extractor:  h.extractor,
		Sentiment:  h.sentiment,
		Responder:  h.responder,
	}
	h.engine = NewEngine(store, caps, h.retriever, logger.NewNopLogger())
	return h
}

// newState cria um estado de turno com a mensagem do cliente
func newState(text string) *State {
	return &State{
		TenantID:       testTenantID,
		ConversationID: testConvID,
		Messages:       []Message{{Sender: "user", Text: text}},
	}
}
