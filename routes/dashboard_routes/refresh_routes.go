package dashboard_routes

import (
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/controllers/dashboard/refresh_controller"
	"github.com/gin-gonic/gin"
)

func SetupRefreshRoutes(rg *gin.RouterGroup) {
	refresh := rg.Group("/auto-refresh")
	refresh.POST("/start", refresh_controller.StartAutoRefresh)
	refresh.POST("/stop", refresh_controller.StopAutoRefresh)
	refresh.GET("/status", refresh_controller.GetRefreshStatus)
	refresh.GET("/history", refresh_controller.GetRefreshHistory)
}
