package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/controller"
)

// SetupStatsRoutes configura as rotas de estatísticas e sinais de demanda
func SetupStatsRoutes(router *gin.RouterGroup, statsController *controller.StatsController) {
	router.GET("/stats/:tenantID", statsController.GetTenantStats)
	router.GET("/network-insights", statsController.NetworkInsights)
}
