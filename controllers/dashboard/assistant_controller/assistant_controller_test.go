package assistant_controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/assistant"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/gin-gonic/gin"
)

type sampleLoader struct{}

func (sampleLoader) LoadOrders(_ context.Context, r models.DateRange) (*services.LoadResult, error) {
	return &services.LoadResult{Range: r, Orders: services.SampleOrders(r.StartDate), Source: services.SourceSample}, nil
}

type stubParser struct {
	available bool
	hint      *models.IntentHint
}

func (p stubParser) Available() bool { return p.available }

func (p stubParser) Parse(context.Context, string) (*models.IntentHint, error) {
	return p.hint, nil
}

func newRouter(parser assistant.HintParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	now := func() time.Time { return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC) }
	Init(assistant.NewOrchestrator(sampleLoader{}, nil, nil, assistant.DefaultTimeoutPolicy(), now), parser)

	r := gin.New()
	r.POST("/api/parse-prompt", ParsePrompt)
	r.POST("/api/assistant/sessions", CreateSession)
	r.POST("/api/assistant/query", QueryAssistant)
	r.GET("/api/assistant/sessions/:id/messages", GetMessages)
	r.DELETE("/api/assistant/sessions/:id/messages", ClearMessages)
	return r
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v body=%s", err, w.Body)
	}
	return env.Data
}

func TestAssistantConversation(t *testing.T) {
	r := newRouter(nil)

	w := do(r, http.MethodPost, "/api/assistant/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	sessionID := decode[sessionResponse](t, w).SessionID
	if sessionID == "" {
		t.Fatal("empty session id")
	}

	w = do(r, http.MethodPost, "/api/assistant/query", `{"sessionId":"`+sessionID+`","prompt":"how much revenue today?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("query: status = %d body=%s", w.Code, w.Body)
	}
	answer := decode[models.AssistantQueryResponse](t, w)
	if answer.Intent != models.IntentRevenue || answer.SessionID != sessionID || answer.Partial {
		t.Errorf("answer = %+v", answer)
	}
	// Sample orders: delivered 110 and in-transit 210 count, pending 55 does not.
	if !strings.Contains(answer.Content, "$320.00") {
		t.Errorf("content = %q", answer.Content)
	}

	w = do(r, http.MethodGet, "/api/assistant/sessions/"+sessionID+"/messages", "")
	if msgs := decode[[]models.Message](t, w); len(msgs) != 2 {
		t.Errorf("messages = %d, want 2", len(msgs))
	}

	if w = do(r, http.MethodDelete, "/api/assistant/sessions/"+sessionID+"/messages", ""); w.Code != http.StatusOK {
		t.Errorf("clear: status = %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/assistant/sessions/"+sessionID+"/messages", "")
	if msgs := decode[[]models.Message](t, w); len(msgs) != 0 {
		t.Errorf("messages after clear = %d", len(msgs))
	}
}

func TestQueryWithoutSessionStartsOne(t *testing.T) {
	r := newRouter(nil)
	w := do(r, http.MethodPost, "/api/assistant/query", `{"prompt":"delayed orders today"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	answer := decode[models.AssistantQueryResponse](t, w)
	if answer.SessionID == "" || answer.Intent != models.IntentDelayed {
		t.Errorf("answer = %+v", answer)
	}
}

func TestAssistantErrors(t *testing.T) {
	r := newRouter(nil)
	tests := []struct {
		method, url, body string
		status            int
	}{
		{http.MethodPost, "/api/assistant/query", `{"sessionId":"missing","prompt":"revenue"}`, http.StatusNotFound},
		{http.MethodPost, "/api/assistant/query", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/api/assistant/sessions/missing/messages", "", http.StatusNotFound},
		{http.MethodDelete, "/api/assistant/sessions/missing/messages", "", http.StatusNotFound},
		{http.MethodPost, "/api/parse-prompt", `{"prompt":"revenue"}`, http.StatusServiceUnavailable},
		{http.MethodPost, "/api/parse-prompt", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := do(r, tt.method, tt.url, tt.body); w.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.url, w.Code, tt.status)
		}
	}
}

func TestParsePrompt(t *testing.T) {
	r := newRouter(stubParser{available: true, hint: &models.IntentHint{Intent: models.IntentTip, Customer: "Jet Aviation"}})

	w := do(r, http.MethodPost, "/api/parse-prompt", `{"prompt":"tips from jet aviation"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	hint := decode[models.IntentHint](t, w)
	if hint.Intent != models.IntentTip || hint.Customer != "Jet Aviation" {
		t.Errorf("hint = %+v", hint)
	}
}
