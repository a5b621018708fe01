package models

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiterContextKey is where the rate limiter middleware stores its snapshot.
const RateLimiterContextKey = "rateLimiter"

type ApiResponse struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message"`
	Data            any          `json:"data,omitempty"`
	Error           string       `json:"error,omitempty"`
	Meta            *Pagination  `json:"meta,omitempty"`
	Rate            *RateLimiter `json:"rate_limit,omitempty"`
	RequestedEntity string       `json:"requested_entity,omitempty"`
}

type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"20"`
	Total      int `json:"total" example:"42"`
	TotalPages int `json:"total_pages" example:"3"`
}

type RateLimiter struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

func rateFromContext(c *gin.Context) *RateLimiter {
	if c == nil {
		return nil
	}
	if rate, exists := c.Get(RateLimiterContextKey); exists {
		if rl, ok := rate.(*RateLimiter); ok {
			return rl
		}
	}
	return nil
}

func requestedEntity(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Method + " " + c.FullPath()
}

func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	return ApiResponse{
		Success:         true,
		Message:         message,
		Data:            data,
		Rate:            rateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

func PaginatedResponse(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	resp := SuccessResponse(c, message, data)
	resp.Meta = meta
	return resp
}

// ErrorResponse builds a failure envelope; err may be nil when message says it all.
func ErrorResponse(c *gin.Context, message string, err error) ApiResponse {
	resp := ApiResponse{
		Message:         message,
		Rate:            rateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
