package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/controller"
)

// SetupUserRoutes configura as rotas do módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	userRouter := router.Group("/users")
	{
		userRouter.GET("", userController.List)
		userRouter.GET("/:id", userController.GetByID)
		userRouter.GET("/:id/preferences", userController.GetPreferences)
		userRouter.GET("/:id/conversations", userController.GetConversations)
		userRouter.GET("/:id/orders", userController.GetOrders)
	}
}
