package refresh_controller

import (
	"errors"
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// StopAutoRefresh godoc
// @Summary Stop the periodic order refresh
// @Tags Auto Refresh
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.RefreshStatus}
// @Failure 409 {object} models.ApiResponse "Not running"
// @Router /api/auto-refresh/stop [post]
func StopAutoRefresh(c *gin.Context) {
	if err := scheduler.Stop(); err != nil {
		if errors.Is(err, models.ErrSchedulerStopped) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Auto-refresh is not running", err))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to stop auto-refresh", err))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Auto-refresh stopped", scheduler.Status()))
}
