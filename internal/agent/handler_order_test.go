package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/agente-atendimento/internal/capability"
)

func TestOrderCreateBuildsDraftAndAsksConfirmation(t *testing.T) {
	h := newHarness()
	h.extractor.items = []capability.CandidateItem{
		{ProductID: testPizzaID, ProductName: "Pizza Margarita", Quantity: 2},
		{ProductID: testColaID, ProductName: "Coca Cola", Quantity: 1},
	}
	st := newState("quiero 2 pizzas y una coca cola")

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	require.True(t, st.OrderDraft.HasItems())
	assert.Len(t, st.OrderDraft.Items, 2)
	assert.Equal(t, 28000.0, st.OrderDraft.Total)
	assert.True(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, "Pizza Margarita x2")
	assert.Contains(t, st.FinalResponse, "$28,000")
	assert.Contains(t, st.FinalResponse, "confirm")
	assert.Empty(t, h.orders.created, "nada deve ser persistido antes da confirmação")
}

func TestOrderCreateRejectedOutsideBusinessHours(t *testing.T) {
	h := newHarness()
	h.tenants.tenants[testTenantID].Config.BusinessHours = map[string]string{}
	st := newState("quiero 2 pizzas")

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "currently closed")
	assert.Contains(t, st.FinalResponse, "closed")
	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
}

func TestOrderCreateNoProductsRecognized(t *testing.T) {
	h := newHarness()
	h.extractor.items = nil
	st := newState("quiero pedir algo rico")

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "menu")
	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
}

func TestOrderCreateExtractionFailureDegradesToMenuOffer(t *testing.T) {
	h := newHarness()
	h.extractor.err = errors.New("timeout")
	st := newState("quiero 2 pizzas")

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "menu")
	assert.Nil(t, st.OrderDraft)
}

func TestOrderCreateAllItemsOutOfStock(t *testing.T) {
	h := newHarness()
	h.products.inventory[testPizzaID] = 1
	h.extractor.items = []capability.CandidateItem{
		{ProductID: testPizzaID, ProductName: "Pizza Margarita", Quantity: 5},
	}
	st := newState("quiero 5 pizzas")

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "don't have sufficient stock")
	assert.Contains(t, st.FinalResponse, "You requested 5, but we only have 1 available")
	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
}

func TestOrderCreatePartialStockBuildsDraftWithWarning(t *testing.T) {
	h := newHarness()
	delete(h.products.inventory, testColaID)
	h.extractor.items = []capability.CandidateItem{
		{ProductID: testPizzaID, ProductName: "Pizza Margarita", Quantity: 1},
		{ProductID: testColaID, ProductName: "Coca Cola", Quantity: 2},
	}
	st := newState("una pizza y dos cocas")

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	require.True(t, st.OrderDraft.HasItems())
	assert.Len(t, st.OrderDraft.Items, 1)
	assert.Equal(t, 12500.0, st.OrderDraft.Total)
	assert.True(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, "insufficient stock")
	assert.Contains(t, st.FinalResponse, "Coca Cola: Currently out of stock")
}

func TestOrderConfirmationPersistsAndClearsDraft(t *testing.T) {
	h := newHarness()
	st := newState("sí, confirmar")
	st.OrderDraft = draftWithPizza()
	st.RequiresConfirmation = true

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	require.Len(t, h.orders.created, 1)
	created := h.orders.created[0]
	assert.Equal(t, testTenantID, created.TenantID)
	assert.Equal(t, testConvID, created.ConversationID)
	assert.Equal(t, 12500.0, created.TotalAmount)
	require.Len(t, created.Items, 1)
	assert.Equal(t, testPizzaID, created.Items[0].ProductID)

	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, created.ID)
	assert.Contains(t, st.FinalResponse, "$12,500")
}

func TestOrderConfirmationPersistFailureKeepsDraft(t *testing.T) {
	h := newHarness()
	h.orders.createErr = errors.New("connection refused")
	st := newState("sí")
	st.OrderDraft = draftWithPizza()
	st.RequiresConfirmation = true

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	require.True(t, st.OrderDraft.HasItems(), "rascunho deve sobreviver à falha de persistência")
	assert.True(t, st.RequiresConfirmation)
	assert.NotContains(t, st.FinalResponse, "confirmed")
	assert.NotContains(t, st.FinalResponse, "✅")
}

func TestOrderRejectionDiscardsDraft(t *testing.T) {
	h := newHarness()
	st := newState("no, mejor cancelar")
	st.OrderDraft = draftWithPizza()
	st.RequiresConfirmation = true

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, "cancelled")
	assert.Empty(t, h.orders.created)
}

func TestOrderAmbiguousReplyWithDraftProcessesAsNewRequest(t *testing.T) {
	// "tal vez" não confirma nem rejeita; o handler segue o fluxo normal e,
	// sem itens extraídos, oferece o cardápio
	h := newHarness()
	st := newState("tal vez")
	st.OrderDraft = draftWithPizza()
	st.RequiresConfirmation = true

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Empty(t, h.orders.created)
	assert.Contains(t, st.FinalResponse, "menu")
}

func TestOrderConfirmWordContainingRejectWordIsNotConfirmed(t *testing.T) {
	// "ok pero no" contém palavras de ambos os conjuntos; a rejeição ganha
	h := newHarness()
	st := newState("ok pero no")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Empty(t, h.orders.created)
	assert.Nil(t, st.OrderDraft)
}

func TestOrderCreatePersonalizedSummary(t *testing.T) {
	h := newHarness()
	h.extractor.items = []capability.CandidateItem{
		{ProductID: testPizzaID, ProductName: "Pizza Margarita", Quantity: 1},
	}
	st := newState("quiero una pizza")
	st.UserContext = &UserContext{FirstName: "María"}

	err := h.engine.handleOrderCreate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "María")
	assert.Contains(t, st.FinalResponse, "¿Confirmamos tu pedido, María?")
}
