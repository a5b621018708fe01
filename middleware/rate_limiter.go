package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed window per IP, method and route. Without Redis every request passes.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := config.RedisClient
		if rdb == nil || maxRequests <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		endpoint := c.FullPath() // /api/orders, /api/assistant/sessions/:id/messages, etc.
		method := c.Request.Method

		key := "rl:" + ip + ":" + method + ":" + endpoint
		resetKey := key + ":resetAt"

		count, err := rdb.Incr(config.Ctx, key).Result()
		if err != nil {
			log.Printf("[ratelimit] ERROR incr key=%s err=%v", key, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Rate limiter unavailable", err))
			c.Abort()
			return
		}

		// First request of the window sets the expiry and a stable resetAt
		if count == 1 {
			rdb.Expire(config.Ctx, key, window)
			rdb.Set(config.Ctx, resetKey, time.Now().Add(window).Unix(), window)
		}

		resetAtUnix, _ := rdb.Get(config.Ctx, resetKey).Int64()
		rate := snapshot(maxRequests, count, time.Unix(resetAtUnix, 0))
		c.Set(models.RateLimiterContextKey, rate)

		if int(count) > maxRequests {
			log.Printf("[ratelimit] WARN blocked ip=%s %s %s count=%d", ip, method, endpoint, count)
			resp := models.ErrorResponse(c, "Too many requests", nil)
			c.JSON(http.StatusTooManyRequests, resp)
			c.Abort()
			return
		}

		c.Next()
	}
}

// snapshot clamps remaining requests and seconds-to-reset at zero.
func snapshot(maxRequests int, count int64, resetAt time.Time) *models.RateLimiter {
	remaining := maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}
	resetIn := int(time.Until(resetAt).Seconds())
	if resetIn < 0 {
		resetIn = 0
	}
	return &models.RateLimiter{
		Limit:          maxRequests,
		Remaining:      remaining,
		ResetAt:        resetAt,
		ResetInSeconds: resetIn,
	}
}
