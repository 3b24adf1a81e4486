package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/dto"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
)

// TenantController gerencia as requisições relacionadas aos tenants
type TenantController struct {
	tenants tenant.Repository
}

// NewTenantController cria uma nova instância de TenantController
func NewTenantController(tenants tenant.Repository) *TenantController {
	return &TenantController{tenants: tenants}
}

// List retorna os tenants ativos
func (c *TenantController) List(ctx *gin.Context) {
	tenants, err := c.tenants.ListActive(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar tenants", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTenantResponseList(tenants))
}
