package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

func geminiReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func TestPromptParserParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/test-model:generateContent") || r.URL.Query().Get("key") != "k" {
			t.Errorf("unexpected request %s", r.URL)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "revenue for Air Culinaire") {
			t.Errorf("prompt missing from request body")
		}
		w.Write([]byte(geminiReply("```json\n{\"intent\":\"Revenue_By_Customer\",\"customer\":\" Air Culinaire \",\"dateRange\":{\"startDate\":\"2026-10-01\",\"endDate\":\"2026-10-15\"}}\n```")))
	}))
	defer srv.Close()

	p := NewPromptParser(config.GeminiConfig{APIKey: "k", Model: "test-model", Endpoint: srv.URL})
	hint, err := p.Parse(context.Background(), "revenue for Air Culinaire")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if hint.Intent != models.IntentRevenueByCustomer || hint.Customer != "Air Culinaire" {
		t.Errorf("hint = %+v", hint)
	}
	if hint.DateRange == nil || hint.DateRange.StartDate != "2026-10-01" {
		t.Errorf("dateRange = %+v", hint.DateRange)
	}
}

func TestPromptParserUnavailable(t *testing.T) {
	_, err := NewPromptParser(config.GeminiConfig{}).Parse(context.Background(), "revenue")
	if !errors.Is(err, models.ErrParserUnavailable) {
		t.Errorf("err = %v, want ErrParserUnavailable", err)
	}
}

func TestPromptParserUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewPromptParser(config.GeminiConfig{APIKey: "k", Endpoint: srv.URL})
	if _, err := p.Parse(context.Background(), "tips last week"); err == nil {
		t.Error("expected error for 429")
	}
}

func TestParseIntentHint(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		intent    string
		wantRange bool
	}{
		{"plain json", `{"intent":"tip"}`, models.IntentTip, false},
		{"fenced", "```\n{\"intent\":\"unknown\"}\n```", models.IntentUnknown, false},
		{"missing intent", `{"customer":"NetJets"}`, "", false},
		{"bad range dropped", `{"intent":"tax","dateRange":{"startDate":"last week","endDate":""}}`, models.IntentTax, false},
		{"inverted range dropped", `{"intent":"tax","dateRange":{"startDate":"2026-10-10","endDate":"2026-10-01"}}`, models.IntentTax, false},
		{"good range", `{"intent":"tax","dateRange":{"startDate":"2026-10-01","endDate":"2026-10-10"}}`, models.IntentTax, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint, err := parseIntentHint(tt.text)
			if err != nil {
				t.Fatalf("parseIntentHint: %v", err)
			}
			if hint.Intent != tt.intent || (hint.DateRange != nil) != tt.wantRange {
				t.Errorf("hint = %+v", hint)
			}
		})
	}

	if _, err := parseIntentHint("not json"); err == nil {
		t.Error("expected error for non-JSON text")
	}
}
