package dashboard_routes

import (
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/controllers/dashboard/assistant_controller"
	"github.com/gin-gonic/gin"
)

func SetupAssistantRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse-prompt", assistant_controller.ParsePrompt)

	a := rg.Group("/assistant")
	a.POST("/sessions", assistant_controller.CreateSession)
	a.POST("/query", assistant_controller.QueryAssistant)
	a.GET("/sessions/:id/messages", assistant_controller.GetMessages)
	a.DELETE("/sessions/:id/messages", assistant_controller.ClearMessages)
}
