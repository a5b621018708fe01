package refresh_controller

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// Scheduler is implemented by services.RefreshScheduler.
type Scheduler interface {
	Start(r models.DateRange) error
	Stop() error
	Status() models.RefreshStatus
	History(ctx context.Context, limit int) ([]models.RefreshRun, error)
}

var scheduler Scheduler

func Init(s Scheduler) {
	scheduler = s
}

// StartAutoRefresh godoc
// @Summary Start the periodic order refresh
// @Description Refreshes the range immediately and then every interval until stopped. An invalid or future range answers 200 with success=false.
// @Tags Auto Refresh
// @Accept json
// @Produce json
// @Param body body models.RefreshStartRequest true "Range to refresh"
// @Success 200 {object} models.ApiResponse{data=models.RefreshStatus}
// @Failure 400 {object} models.ApiResponse "Malformed body"
// @Router /api/auto-refresh/start [post]
func StartAutoRefresh(c *gin.Context) {
	var req models.RefreshStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auto-refresh.start] WARN bad body err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "startDate and endDate are required", err))
		return
	}

	r := models.DateRange{StartDate: req.StartDate, EndDate: req.EndDate}
	if err := scheduler.Start(r); err != nil {
		if errors.Is(err, models.ErrFutureDate) || errors.Is(err, models.ErrInvalidDateRange) {
			log.Printf("[auto-refresh.start] WARN rejected range=%s err=%v", r, err)
			c.JSON(http.StatusOK, models.ErrorResponse(c, "Invalid date range", err))
			return
		}
		log.Printf("[auto-refresh.start] ERROR range=%s err=%v", r, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to start auto-refresh", err))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Auto-refresh started", scheduler.Status()))
}
