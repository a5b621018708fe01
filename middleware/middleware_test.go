package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterPassesThroughWithoutRedis(t *testing.T) {
	config.RedisClient = nil

	r := gin.New()
	r.Use(RateLimiter(1, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		if c.GetString("requestID") == "" {
			t.Error("requestID missing from context")
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("response has no request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestSnapshotClampsAtZero(t *testing.T) {
	rate := snapshot(5, 9, time.Now().Add(-time.Second))
	if rate.Remaining != 0 || rate.ResetInSeconds != 0 || rate.Limit != 5 {
		t.Errorf("snapshot = %+v", rate)
	}
	rate = snapshot(5, 2, time.Now().Add(30*time.Second))
	if rate.Remaining != 3 || rate.ResetInSeconds < 28 {
		t.Errorf("snapshot = %+v", rate)
	}
}
