package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

// PromptParser asks Gemini for a structured reading of an assistant prompt. The assistant
// works without it; any error here only means the local heuristics run alone.
type PromptParser struct {
	config config.GeminiConfig
	client *http.Client
	now    func() time.Time
}

func NewPromptParser(cfg config.GeminiConfig) *PromptParser {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	return &PromptParser{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

func (p *PromptParser) Available() bool {
	return p != nil && p.config.APIKey != ""
}

// Parse returns the intent hint for prompt. ErrParserUnavailable when no API key is set.
func (p *PromptParser) Parse(ctx context.Context, prompt string) (*models.IntentHint, error) {
	if !p.Available() {
		return nil, models.ErrParserUnavailable
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, models.ErrEmptyPrompt
	}

	fullPrompt := buildIntentPrompt(prompt, p.now())
	log.Printf("[prompt.parse] query=%q", truncate(prompt, 80))

	text, err := p.callGemini(ctx, fullPrompt)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	hint, err := parseIntentHint(text)
	if err != nil {
		log.Printf("[prompt.parse] WARN unparsable response err=%v", err)
		return nil, err
	}
	log.Printf("[prompt.parse] intent=%s customer=%q brand=%q range=%v", hint.Intent, hint.Customer, hint.Brand, hint.DateRange)
	return hint, nil
}

func buildIntentPrompt(prompt string, now time.Time) string {
	var b strings.Builder
	b.WriteString("You classify questions about e-commerce catering orders.\n")
	b.WriteString("Today is " + now.Format(models.DateLayout) + " (" + now.Weekday().String() + ").\n")
	b.WriteString("Choose exactly one intent from: " + strings.Join(models.KnownIntents, ", ") + ".\n")
	b.WriteString("Use \"unknown\" when the question is not about orders, revenue, fees, taxes or deliveries.\n")
	b.WriteString("Weeks run Sunday to Saturday. Dates are YYYY-MM-DD.\n")
	b.WriteString(`Respond with JSON only: {"intent":"","customer":"","brand":"","dateRange":{"startDate":"","endDate":""},"needsClarification":false,"clarificationNeeded":""}`)
	b.WriteString("\nOmit dateRange when the question names no period.\n\nUSER QUERY: ")
	b.WriteString(prompt)
	return b.String()
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (p *PromptParser) callGemini(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", p.config.Endpoint, p.config.Model, p.config.APIKey)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("Gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini returned empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// parseIntentHint strips markdown fences and decodes the hint. A date range with
// malformed bounds is dropped rather than failing the whole hint.
func parseIntentHint(text string) (*models.IntentHint, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var hint models.IntentHint
	if err := json.Unmarshal([]byte(text), &hint); err != nil {
		return nil, fmt.Errorf("failed to parse intent hint: %w (response: %.200s)", err, text)
	}

	// An empty intent stays empty so the local matchers still route the question.
	hint.Intent = strings.ToLower(strings.TrimSpace(hint.Intent))
	hint.Customer = strings.TrimSpace(hint.Customer)
	hint.Brand = strings.TrimSpace(hint.Brand)

	if r := hint.DateRange; r != nil {
		_, errStart := time.Parse(models.DateLayout, r.StartDate)
		_, errEnd := time.Parse(models.DateLayout, r.EndDate)
		if errStart != nil || errEnd != nil || r.StartDate > r.EndDate {
			hint.DateRange = nil
		}
	}
	return &hint, nil
}
