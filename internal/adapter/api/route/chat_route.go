package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/controller"
)

// SetupChatRoutes configura a rota do turno de conversa
func SetupChatRoutes(router *gin.RouterGroup, chatController *controller.ChatController) {
	router.POST("/chat", chatController.Handle)
}
