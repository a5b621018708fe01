package refresh_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// GetRefreshStatus godoc
// @Summary Auto-refresh status
// @Tags Auto Refresh
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.RefreshStatus}
// @Router /api/auto-refresh/status [get]
func GetRefreshStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Auto-refresh status", scheduler.Status()))
}
