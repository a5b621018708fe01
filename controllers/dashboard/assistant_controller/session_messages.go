package assistant_controller

import (
	"errors"
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// GetMessages godoc
// @Summary Session transcript
// @Tags Assistant
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=[]models.Message}
// @Failure 404 {object} models.ApiResponse
// @Router /api/assistant/sessions/{id}/messages [get]
func GetMessages(c *gin.Context) {
	msgs, err := orchestrator.Sessions().Messages(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Messages", msgs))
}

// ClearMessages godoc
// @Summary Clear a session transcript
// @Tags Assistant
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/assistant/sessions/{id}/messages [delete]
func ClearMessages(c *gin.Context) {
	if err := orchestrator.Sessions().Clear(c.Param("id")); err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Messages cleared", nil))
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Session not found", err))
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Session error", err))
}
