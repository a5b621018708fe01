package refresh_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// GetRefreshHistory godoc
// @Summary Recent auto-refresh runs
// @Tags Auto Refresh
// @Produce json
// @Param limit query int false "Max runs (default 20, max 100)"
// @Success 200 {object} models.ApiResponse{data=[]models.RefreshRun}
// @Failure 500 {object} models.ApiResponse
// @Router /api/auto-refresh/history [get]
func GetRefreshHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		log.Printf("[auto-refresh.history] WARN invalid limit=%q err=%v -> default 20", c.Query("limit"), err)
		limit = 20
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	runs, err := scheduler.History(ctx, limit)
	if err != nil {
		log.Printf("[auto-refresh.history] ERROR list failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load refresh history", err))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Refresh history", runs))
}
