package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	recentConversationsLimit = 10
	recentOrdersLimit        = 5
	preferenceHintsLimit     = 5
)

// TurnProcessor processa um turno de conversa contra o estado acumulado
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, st *agent.State)
}

// ChatController gerencia o endpoint de turnos de conversa
type ChatController struct {
	engine        TurnProcessor
	tenants       tenant.Repository
	conversations conversation.Repository
	orders        order.Repository
	users         user.Repository
	logger        logger.Logger
}

// NewChatController cria uma nova instância de ChatController
func NewChatController(
	engine TurnProcessor,
	tenants tenant.Repository,
	conversations conversation.Repository,
	orders order.Repository,
	users user.Repository,
	log logger.Logger,
) *ChatController {
	return &ChatController{
		engine:        engine,
		tenants:       tenants,
		conversations: conversations,
		orders:        orders,
		users:         users,
		logger:        log,
	}
}

// Handle processa um turno: valida o tenant, carrega ou cria a conversa,
// restaura o rascunho de pedido da metadata, roda o motor do agente e
// persiste o novo estado e as mensagens do turno
func (c *ChatController) Handle(ctx *gin.Context) {
	var request dto.ChatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	t, err := c.tenants.FindByID(ctx, request.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Tenant não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar tenant", err.Error()))
		return
	}
	if !t.IsActive {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Tenant inativo", ""))
		return
	}

	conv, err := c.loadOrCreateConversation(ctx, &request)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Conversa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao carregar conversa", err.Error()))
		return
	}

	// restaura a invariante do total após desserialização da metadata
	draft := conv.Metadata.OrderDraft
	if draft != nil {
		draft.Recalculate()
	}

	userMsg, err := conversation.NewMessage(conv.ID, conversation.SenderUser, request.Message, "")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Mensagem inválida", err.Error()))
		return
	}
	if err := c.conversations.AddMessage(ctx, userMsg); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao registrar mensagem", err.Error()))
		return
	}

	history, err := c.conversations.ListMessages(ctx, conv.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao carregar histórico", err.Error()))
		return
	}
	messages := make([]agent.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, agent.Message{Sender: string(m.Sender), Text: m.Text})
	}

	st := &agent.State{
		TenantID:       conv.TenantID,
		ConversationID: conv.ID,
		Messages:       messages,
		OrderDraft:     draft,
		UserContext:    c.buildUserContext(ctx, request.UserID, conv.TenantID),
		ConversationContext: agent.ConversationContext{
			LastIntent:     agent.NormalizeIntent(conv.Metadata.LastIntent),
			HasActiveOrder: draft.HasItems(),
		},
	}

	c.engine.ProcessTurn(ctx, st)

	metadata := conversation.Metadata{
		OrderDraft: st.OrderDraft,
		LastIntent: string(st.Intent),
	}
	if err := c.conversations.UpdateMetadata(ctx, conv.ID, metadata); err != nil {
		c.logger.Error("conversation metadata persistence failed",
			"conversation_id", conv.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao salvar estado da conversa", err.Error()))
		return
	}

	if agentMsg, err := conversation.NewMessage(conv.ID, conversation.SenderAgent, st.FinalResponse, string(st.Intent)); err == nil {
		// a resposta já foi computada; falha aqui não derruba o turno
		if err := c.conversations.AddMessage(ctx, agentMsg); err != nil {
			c.logger.Warn("agent message persistence failed",
				"conversation_id", conv.ID, "error", err)
		}
	}

	ctx.JSON(http.StatusOK, dto.ChatResponse{
		ConversationID:       conv.ID,
		Response:             st.FinalResponse,
		Intent:               string(st.Intent),
		RequiresConfirmation: st.RequiresConfirmation,
		OrderSummary:         st.OrderDraft,
	})
}

// loadOrCreateConversation carrega a conversa informada ou inicia uma nova.
// Conversa de outro tenant é tratada como inexistente.
func (c *ChatController) loadOrCreateConversation(ctx context.Context, request *dto.ChatRequest) (*conversation.Conversation, error) {
	if request.ConversationID == "" {
		conv := conversation.NewConversation(request.TenantID, request.UserID, "", request.Channel)
		if err := c.conversations.Create(ctx, conv); err != nil {
			return nil, err
		}
		return conv, nil
	}

	conv, err := c.conversations.FindByID(ctx, request.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv.TenantID != request.TenantID {
		return nil, conversation.ErrNotFound
	}
	return conv, nil
}

// buildUserContext monta o contexto de personalização do turno. Tudo aqui é
// melhor-esforço: qualquer falha degrada para um contexto parcial ou nulo.
func (c *ChatController) buildUserContext(ctx context.Context, userID, tenantID string) *agent.UserContext {
	if userID == "" {
		return nil
	}

	u, err := c.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			c.logger.Warn("user lookup failed", "user_id", userID, "error", err)
		}
		return nil
	}

	uc := &agent.UserContext{
		UserID:    u.ID,
		FirstName: u.FirstName(),
		FullName:  u.Name,
	}

	convs, err := c.conversations.ListByUser(ctx, userID, tenantID, recentConversationsLimit)
	if err != nil {
		c.logger.Warn("user conversations lookup failed", "user_id", userID, "error", err)
	} else {
		uc.ConversationCount = len(convs)
		// a conversa do turno atual já está na lista
		uc.IsReturningCustomer = len(convs) > 1

		ids := make([]string, 0, len(convs))
		for _, cv := range convs {
			ids = append(ids, cv.ID)
		}
		if len(ids) > 0 {
			orders, err := c.orders.ListByConversations(ctx, ids, recentOrdersLimit)
			if err != nil {
				c.logger.Warn("recent orders lookup failed", "user_id", userID, "error", err)
			} else {
				uc.RecentOrders = orders
			}
		}
	}

	prefs, err := c.users.ListPreferences(ctx, userID, tenantID)
	if err != nil {
		c.logger.Warn("user preferences lookup failed", "user_id", userID, "error", err)
		return uc
	}
	for i, p := range prefs {
		if i >= preferenceHintsLimit {
			break
		}
		uc.Preferences = append(uc.Preferences, agent.PreferenceHint{
			Type:       p.PreferenceType,
			Value:      p.PreferenceValue,
			Confidence: p.Confidence,
		})
	}
	return uc
}
