package dashboard_routes

import (
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/controllers/dashboard/health_controller"
	"github.com/gin-gonic/gin"
)

func SetupHealthRoutes(r *gin.Engine) {
	r.GET("/health", health_controller.Health)
}
