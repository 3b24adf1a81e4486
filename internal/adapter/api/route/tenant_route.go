package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/controller"
)

// SetupTenantRoutes configura as rotas do módulo de tenants
func SetupTenantRoutes(router *gin.RouterGroup, tenantController *controller.TenantController) {
	tenantRouter := router.Group("/tenants")
	{
		tenantRouter.GET("", tenantController.List)
	}
}
