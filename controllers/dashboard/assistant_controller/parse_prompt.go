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

var (
	orchestrator *assistant.Orchestrator
	promptParser assistant.HintParser
)

// Init wires the handlers. parser may be nil when no language model is configured.
func Init(o *assistant.Orchestrator, parser assistant.HintParser) {
	orchestrator = o
	promptParser = parser
}

// ParsePrompt godoc
// @Summary Parse a prompt into an intent hint
// @Description Calls the language-model parser. Returns 503 when it is not configured.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param body body models.ParsePromptRequest true "Prompt"
// @Success 200 {object} models.ApiResponse{data=models.IntentHint}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse "Parser failed"
// @Failure 503 {object} models.ApiResponse "Parser not configured"
// @Router /api/parse-prompt [post]
func ParsePrompt(c *gin.Context) {
	var req models.ParsePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "prompt is required", err))
		return
	}
	if promptParser == nil || !promptParser.Available() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Prompt parser is not configured", models.ErrParserUnavailable))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	hint, err := promptParser.Parse(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, models.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "prompt is required", err))
			return
		}
		log.Printf("[assistant.parse-prompt] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to parse prompt", err))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Prompt parsed", hint))
}
