package health_controller

import (
	"net/http"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

type healthStatus struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Health godoc
// @Summary Liveness probe
// @Description Always 200 while the process is serving; optional stores report "disabled", "ok" or "down".
// @Tags Health
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /health [get]
func Health(c *gin.Context) {
	ctx, cancel := config.WithCustomTimeout(2 * time.Second)
	defer cancel()

	status := healthStatus{
		Status:   "ok",
		Uptime:   time.Since(startedAt).Round(time.Second).String(),
		Database: "disabled",
		Redis:    "disabled",
	}
	if config.DB != nil {
		status.Database = "ok"
		if err := config.DB.Ping(ctx); err != nil {
			status.Database = "down"
		}
	}
	if config.RedisClient != nil {
		status.Redis = "ok"
		if err := config.RedisClient.Ping(ctx).Err(); err != nil {
			status.Redis = "down"
		}
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Service is healthy", status))
}
