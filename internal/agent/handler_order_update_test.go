package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/agente-atendimento/internal/capability"
)

func TestOrderUpdateWithoutDraftRedirectsToNewOrder(t *testing.T) {
	h := newHarness()
	st := newState("agrégame una coca cola")

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "don't see an active order")
	assert.False(t, st.RequiresConfirmation)
}

func TestOrderUpdateConfirmationPersistsOrder(t *testing.T) {
	h := newHarness()
	st := newState("sí, dale")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	require.Len(t, h.orders.created, 1)
	assert.Equal(t, 12500.0, h.orders.created[0].TotalAmount)
	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, "confirmed")
}

func TestOrderUpdateRejectionDiscardsDraft(t *testing.T) {
	h := newHarness()
	st := newState("no, mejor otro día")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	assert.Empty(t, h.orders.created)
	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, "canceled")
}

func TestOrderUpdateCancelDiscardsDraft(t *testing.T) {
	h := newHarness()
	st := newState("quiero cancelar mi pedido")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	assert.Nil(t, st.OrderDraft)
	assert.False(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, "canceled")
}

func TestOrderUpdateAppendsItemsAndRecalculatesTotal(t *testing.T) {
	h := newHarness()
	h.extractor.items = []capability.CandidateItem{
		{ProductID: testColaID, ProductName: "Coca Cola", Quantity: 2},
	}
	st := newState("y también dos coca colas")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	require.Len(t, st.OrderDraft.Items, 2)
	assert.Equal(t, 18500.0, st.OrderDraft.Total)
	assert.True(t, st.RequiresConfirmation)
	assert.Contains(t, st.FinalResponse, "Coca Cola x2")
	assert.Contains(t, st.FinalResponse, "Pizza Margarita x1")
	assert.Contains(t, st.FinalResponse, "$18,500")
}

func TestOrderUpdateMenuRequestShowsCategoryFilteredMenu(t *testing.T) {
	h := newHarness()
	h.extractor.items = nil
	st := newState("¿qué bebidas tienen?")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "bebidas")
	assert.Contains(t, st.FinalResponse, "Coca Cola")
	assert.NotContains(t, st.FinalResponse, "Pizza Margarita")
	assert.False(t, st.RequiresConfirmation)
	// o rascunho permanece intacto enquanto o cliente escolhe
	assert.Len(t, st.OrderDraft.Items, 1)
}

func TestOrderUpdateMenuWithoutCategoryShowsEverything(t *testing.T) {
	h := newHarness()
	h.extractor.items = nil
	st := newState("ver menu")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "Pizza Margarita")
	assert.Contains(t, st.FinalResponse, "Coca Cola")
}

func TestOrderUpdateInsufficientStockKeepsExistingDraft(t *testing.T) {
	h := newHarness()
	h.products.inventory[testColaID] = 1
	h.extractor.items = []capability.CandidateItem{
		{ProductID: testColaID, ProductName: "Coca Cola", Quantity: 5},
	}
	st := newState("agrégame 5 coca colas")
	st.OrderDraft = draftWithPizza()

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "falta de stock")
	assert.Contains(t, st.FinalResponse, "Solicitaste 5, pero solo tenemos 1 disponibles")
	require.Len(t, st.OrderDraft.Items, 1, "itens existentes não devem ser tocados")
	assert.Equal(t, 12500.0, st.OrderDraft.Total)
	assert.False(t, st.RequiresConfirmation)
}

func TestOrderUpdatePersonalizedAppend(t *testing.T) {
	h := newHarness()
	h.extractor.items = []capability.CandidateItem{
		{ProductID: testColaID, ProductName: "Coca Cola", Quantity: 1},
	}
	st := newState("también una coca")
	st.OrderDraft = draftWithPizza()
	st.UserContext = &UserContext{FirstName: "Carlos"}

	err := h.engine.handleOrderUpdate(context.Background(), st)

	require.NoError(t, err)
	assert.Contains(t, st.FinalResponse, "¡Perfecto Carlos!")
	assert.Contains(t, st.FinalResponse, "confirmamos tu pedido, Carlos?")
}
