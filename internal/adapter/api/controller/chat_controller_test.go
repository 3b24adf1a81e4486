package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/dto"
	"github.com/hugohenrick/agente-atendimento/internal/adapter/repository"
	"github.com/hugohenrick/agente-atendimento/internal/agent"
	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/internal/domain/user"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

const (
	chatTenantID = "11111111-1111-1111-1111-111111111111"
	chatUserID   = "22222222-2222-2222-2222-222222222222"
)

type stubEngine struct {
	reply     string
	intent    agent.Intent
	lastState *agent.State
}

func (s *stubEngine) ProcessTurn(_ context.Context, st *agent.State) {
	s.lastState = st
	st.Intent = s.intent
	st.FinalResponse = s.reply
}

type memTenantRepo struct {
	tenants map[string]*tenant.Tenant
}

func (m *memTenantRepo) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, repository.ErrTenantNotFound
	}
	return t, nil
}
func (m *memTenantRepo) ListActive(_ context.Context) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, t := range m.tenants {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}
func (m *memTenantRepo) Create(_ context.Context, t *tenant.Tenant) error {
	m.tenants[t.ID] = t
	return nil
}

type memConversationRepo struct {
	conversations map[string]*conversation.Conversation
	messages      []conversation.Message
	byUser        []conversation.Conversation
	metadataCalls []conversation.Metadata
}

func (m *memConversationRepo) Create(_ context.Context, c *conversation.Conversation) error {
	m.conversations[c.ID] = c
	return nil
}
func (m *memConversationRepo) FindByID(_ context.Context, id string) (*conversation.Conversation, error) {
	c, ok := m.conversations[id]
	if !ok {
		return nil, conversation.ErrNotFound
	}
	return c, nil
}
func (m *memConversationRepo) UpdateMetadata(_ context.Context, id string, metadata conversation.Metadata) error {
	c, ok := m.conversations[id]
	if !ok {
		return conversation.ErrNotFound
	}
	c.Metadata = metadata
	m.metadataCalls = append(m.metadataCalls, metadata)
	return nil
}
func (m *memConversationRepo) AddMessage(_ context.Context, msg *conversation.Message) error {
	m.messages = append(m.messages, *msg)
	return nil
}
func (m *memConversationRepo) ListMessages(_ context.Context, conversationID string) ([]conversation.Message, error) {
	var out []conversation.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}
func (m *memConversationRepo) ListByUser(_ context.Context, _, _ string, _ int) ([]conversation.Conversation, error) {
	return m.byUser, nil
}
func (m *memConversationRepo) ListMessagesByIntent(_ context.Context, _ string, _ []string) ([]conversation.Message, error) {
	return nil, nil
}
func (m *memConversationRepo) ListUserMessages(_ context.Context, _ string) ([]conversation.Message, error) {
	return nil, nil
}
func (m *memConversationRepo) CountUserMessagesBetween(_ context.Context, _ string, _, _ time.Time) (int, error) {
	return 0, nil
}
func (m *memConversationRepo) ListMessagesByIntentBetween(_ context.Context, _ string, _ []string, _, _ time.Time) ([]conversation.Message, error) {
	return nil, nil
}

type memOrderRepo struct {
	orders []order.Order
}

func (m *memOrderRepo) Create(_ context.Context, o *order.Order) error {
	m.orders = append(m.orders, *o)
	return nil
}
func (m *memOrderRepo) ListByConversations(_ context.Context, _ []string, _ int) ([]order.Order, error) {
	return m.orders, nil
}
func (m *memOrderRepo) CountBetween(_ context.Context, _ string, _, _ time.Time) (int, error) {
	return 0, nil
}

type memUserRepo struct {
	users map[string]*user.User
	prefs []user.Preference
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}
func (m *memUserRepo) ListActive(_ context.Context) ([]user.User, error) { return nil, nil }
func (m *memUserRepo) Create(_ context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}
func (m *memUserRepo) ListPreferences(_ context.Context, _, _ string) ([]user.Preference, error) {
	return m.prefs, nil
}
func (m *memUserRepo) UpsertPreference(_ context.Context, _, _, _, _ string, _ float64) (*user.Preference, error) {
	return nil, nil
}

type chatHarness struct {
	router        *gin.Engine
	engine        *stubEngine
	tenants       *memTenantRepo
	conversations *memConversationRepo
	orders        *memOrderRepo
	users         *memUserRepo
}

func newChatHarness() *chatHarness {
	gin.SetMode(gin.TestMode)

	tenants := &memTenantRepo{tenants: map[string]*tenant.Tenant{
		chatTenantID: {
			ID:       chatTenantID,
			Name:     "La Pizzería",
			Type:     tenant.TypeRestaurant,
			Timezone: "UTC",
			IsActive: true,
		},
	}}
	conversations := &memConversationRepo{conversations: map[string]*conversation.Conversation{}}
	orders := &memOrderRepo{}
	users := &memUserRepo{users: map[string]*user.User{}}
	engine := &stubEngine{reply: "¡Hola! ¿En qué puedo ayudarte?", intent: agent.IntentOther}

	chatController := NewChatController(engine, tenants, conversations, orders, users, logger.NewNopLogger())

	router := gin.New()
	router.POST("/api/v1/chat", chatController.Handle)

	return &chatHarness{
		router:        router,
		engine:        engine,
		tenants:       tenants,
		conversations: conversations,
		orders:        orders,
		users:         users,
	}
}

func (h *chatHarness) post(t *testing.T, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decodeChatResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.ChatResponse {
	t.Helper()
	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestChatRejectsInvalidBody(t *testing.T) {
	h := newChatHarness()

	rec := h.post(t, map[string]any{"tenant_id": chatTenantID})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatUnknownTenantReturns404(t *testing.T) {
	h := newChatHarness()

	rec := h.post(t, map[string]any{
		"tenant_id": "99999999-9999-9999-9999-999999999999",
		"message":   "hola",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatInactiveTenantReturns403(t *testing.T) {
	h := newChatHarness()
	h.tenants.tenants[chatTenantID].IsActive = false

	rec := h.post(t, map[string]any{"tenant_id": chatTenantID, "message": "hola"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChatCreatesConversationAndPersistsTurn(t *testing.T) {
	h := newChatHarness()
	h.engine.intent = agent.IntentFAQ
	h.engine.reply = "Abrimos de 9 a 18."

	rec := h.post(t, map[string]any{"tenant_id": chatTenantID, "message": "¿a qué hora abren?"})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeChatResponse(t, rec)
	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "Abrimos de 9 a 18.", resp.Response)
	assert.Equal(t, "faq", resp.Intent)

	require.Contains(t, h.conversations.conversations, resp.ConversationID)
	require.Len(t, h.conversations.messages, 2, "mensagem do cliente e do agente")
	assert.Equal(t, conversation.SenderUser, h.conversations.messages[0].Sender)
	assert.Equal(t, conversation.SenderAgent, h.conversations.messages[1].Sender)
	assert.Equal(t, "faq", h.conversations.messages[1].Intent)

	require.Len(t, h.conversations.metadataCalls, 1)
	assert.Equal(t, "faq", h.conversations.metadataCalls[0].LastIntent)
}

func TestChatUnknownConversationReturns404(t *testing.T) {
	h := newChatHarness()

	rec := h.post(t, map[string]any{
		"tenant_id":       chatTenantID,
		"conversation_id": "55555555-5555-5555-5555-555555555555",
		"message":         "hola",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatConversationFromAnotherTenantIsHidden(t *testing.T) {
	h := newChatHarness()
	conv := conversation.NewConversation("99999999-9999-9999-9999-999999999999", "", "", "web")
	h.conversations.conversations[conv.ID] = conv

	rec := h.post(t, map[string]any{
		"tenant_id":       chatTenantID,
		"conversation_id": conv.ID,
		"message":         "hola",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatRestoresDraftFromMetadata(t *testing.T) {
	h := newChatHarness()
	h.engine.intent = agent.IntentOrderUpdate

	conv := conversation.NewConversation(chatTenantID, "", "", "web")
	conv.Metadata = conversation.Metadata{
		OrderDraft: &order.Draft{
			Items: []order.DraftItem{{
				ProductID:   "33333333-3333-3333-3333-333333333333",
				ProductName: "Pizza Margarita",
				Quantity:    2,
				UnitPrice:   12500,
				ItemTotal:   25000,
			}},
			// total divergente é recalculado antes do turno
			Total: 0,
		},
		LastIntent: "order_create",
	}
	h.conversations.conversations[conv.ID] = conv

	rec := h.post(t, map[string]any{
		"tenant_id":       chatTenantID,
		"conversation_id": conv.ID,
		"message":         "agrega una coca cola",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	st := h.engine.lastState
	require.NotNil(t, st)
	require.NotNil(t, st.OrderDraft)
	assert.Equal(t, 25000.0, st.OrderDraft.Total)
	assert.True(t, st.ConversationContext.HasActiveOrder)
	assert.Equal(t, agent.IntentOrderCreate, st.ConversationContext.LastIntent)

	resp := decodeChatResponse(t, rec)
	require.NotNil(t, resp.OrderSummary)
	assert.Equal(t, 25000.0, resp.OrderSummary.Total)
}

func TestChatBuildsUserContext(t *testing.T) {
	h := newChatHarness()
	h.users.users[chatUserID] = &user.User{
		ID:       chatUserID,
		Name:     "María González",
		Email:    "maria@example.com",
		IsActive: true,
	}
	h.users.prefs = []user.Preference{
		{PreferenceType: "favorite_category", PreferenceValue: "pizzas", Confidence: 0.8},
	}
	prior := conversation.NewConversation(chatTenantID, chatUserID, "", "web")
	current := conversation.NewConversation(chatTenantID, chatUserID, "", "web")
	h.conversations.byUser = []conversation.Conversation{*prior, *current}
	h.orders.orders = []order.Order{{ID: "o1", TenantID: chatTenantID, TotalAmount: 12500}}

	rec := h.post(t, map[string]any{
		"tenant_id": chatTenantID,
		"user_id":   chatUserID,
		"message":   "hola",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	st := h.engine.lastState
	require.NotNil(t, st)
	require.NotNil(t, st.UserContext)
	assert.Equal(t, "María", st.UserContext.FirstName)
	assert.True(t, st.UserContext.IsReturningCustomer)
	assert.Len(t, st.UserContext.RecentOrders, 1)
	require.Len(t, st.UserContext.Preferences, 1)
	assert.Equal(t, "pizzas", st.UserContext.Preferences[0].Value)
}

func TestChatAnonymousUserHasNoContext(t *testing.T) {
	h := newChatHarness()

	rec := h.post(t, map[string]any{"tenant_id": chatTenantID, "message": "hola"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, h.engine.lastState)
	assert.Nil(t, h.engine.lastState.UserContext)
}
