package assistant_controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/assistant"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// QueryAssistant godoc
// @Summary Ask the assistant a question
// @Description Loads the orders the question needs (waiting for the fetch within a range-dependent timeout) and answers it. An empty sessionId starts a new session.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param body body models.AssistantQueryRequest true "Question"
// @Success 200 {object} models.ApiResponse{data=models.AssistantQueryResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Unknown session"
// @Router /api/assistant/query [post]
func QueryAssistant(c *gin.Context) {
	var req models.AssistantQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "prompt is required", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Minute)
	defer cancel()

	start := time.Now()
	out, err := orchestrator.Execute(ctx, assistant.Command{
		SessionID:  req.SessionID,
		Prompt:     req.Prompt,
		SkipParser: req.SkipParser,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Session not found", err))
		case errors.Is(err, models.ErrEmptyPrompt):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "prompt is required", err))
		default:
			log.Printf("[assistant.query] ERROR session=%s err=%v", req.SessionID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to answer", err))
		}
		return
	}

	log.Printf("[assistant.query] session=%s intent=%s partial=%t took=%s",
		out.SessionID, out.Result.Intent, out.Partial, time.Since(start))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Answered", models.AssistantQueryResponse{
		SessionID: out.SessionID,
		Intent:    out.Result.Intent,
		Content:   out.Result.Content,
		Data:      out.Result.Data,
		DateRange: out.Result.Range,
		Partial:   out.Partial,
	}))
}
