package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id (kept when the client sends one) and logs
// method, route, status and latency once the handler returns.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("requestID", reqID)
		c.Header(RequestIDHeader, reqID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Printf("[http] ERROR %s %s status=%d latency=%s id=%s errors=%s",
				c.Request.Method, route, status, time.Since(start), reqID, c.Errors.String())
		case status >= 400:
			log.Printf("[http] WARN %s %s status=%d latency=%s id=%s",
				c.Request.Method, route, status, time.Since(start), reqID)
		default:
			log.Printf("[http] %s %s status=%d latency=%s id=%s",
				c.Request.Method, route, status, time.Since(start), reqID)
		}
	}
}
