package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/dto"
	"github.com/hugohenrick/agente-atendimento/internal/adapter/repository"
	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/user"
)

const (
	userConversationsLimit = 20
	userOrdersLimit        = 10
)

// UserController gerencia as requisições relacionadas aos usuários
type UserController struct {
	users         user.Repository
	conversations conversation.Repository
	orders        order.Repository
}

// NewUserController cria uma nova instância de UserController
func NewUserController(users user.Repository, conversations conversation.Repository, orders order.Repository) *UserController {
	return &UserController{
		users:         users,
		conversations: conversations,
		orders:        orders,
	}
}

// List retorna os usuários ativos
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.users.ListActive(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar usuários", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponseList(users))
}

// GetByID retorna um usuário pelo ID
func (c *UserController) GetByID(ctx *gin.Context) {
	u, err := c.users.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Usuário não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar usuário", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// GetPreferences retorna as preferências aprendidas do usuário,
// opcionalmente filtradas pelo query param tenant_id
func (c *UserController) GetPreferences(ctx *gin.Context) {
	prefs, err := c.users.ListPreferences(ctx, ctx.Param("id"), ctx.Query("tenant_id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar preferências", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPreferenceResponseList(prefs))
}

// GetConversations retorna as conversas recentes do usuário
func (c *UserController) GetConversations(ctx *gin.Context) {
	convs, err := c.conversations.ListByUser(ctx, ctx.Param("id"), ctx.Query("tenant_id"), userConversationsLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar conversas", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToConversationSummaryList(convs))
}

// GetOrders retorna os pedidos recentes do usuário através de suas conversas
func (c *UserController) GetOrders(ctx *gin.Context) {
	convs, err := c.conversations.ListByUser(ctx, ctx.Param("id"), ctx.Query("tenant_id"), userConversationsLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar conversas", err.Error()))
		return
	}

	ids := make([]string, 0, len(convs))
	for _, cv := range convs {
		ids = append(ids, cv.ID)
	}
	if len(ids) == 0 {
		ctx.JSON(http.StatusOK, []dto.OrderResponse{})
		return
	}

	orders, err := c.orders.ListByConversations(ctx, ids, userOrdersLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar pedidos", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOrderResponseList(orders))
}
