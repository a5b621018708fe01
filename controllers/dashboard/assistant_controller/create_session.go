package assistant_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateSession godoc
// @Summary Start an assistant session
// @Tags Assistant
// @Produce json
// @Success 201 {object} models.ApiResponse
// @Router /api/assistant/sessions [post]
func CreateSession(c *gin.Context) {
	s := orchestrator.Sessions().Create()
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Session created", sessionResponse{SessionID: s.ID}))
}
