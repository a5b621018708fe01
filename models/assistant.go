package models

import "time"

type MessageType string

const (
	MessageUser      MessageType = "user"
	MessageAssistant MessageType = "assistant"
)

// Message is one entry of an assistant transcript.
type Message struct {
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Data      any         `json:"data,omitempty"`
	Loading   bool        `json:"loading,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// IntentHint is the structured reading of a prompt produced by the language-model parser.
type IntentHint struct {
	Intent              string     `json:"intent"`
	Customer            string     `json:"customer,omitempty"`
	Brand               string     `json:"brand,omitempty"`
	DateRange           *DateRange `json:"dateRange,omitempty"`
	NeedsClarification  bool       `json:"needsClarification,omitempty"`
	ClarificationNeeded string     `json:"clarificationNeeded,omitempty"`
}

type ParsePromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type AssistantQueryRequest struct {
	SessionID string `json:"sessionId"`
	Prompt    string `json:"prompt" binding:"required"`
	// SkipParser forces the local heuristics even when the language-model parser is configured.
	SkipParser bool `json:"skipParser"`
}

type AssistantQueryResponse struct {
	SessionID string     `json:"sessionId"`
	Intent    string     `json:"intent"`
	Content   string     `json:"content"`
	Data      any        `json:"data"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	// Partial is set when the fetch for the requested range timed out and the answer
	// was computed over whatever was loaded.
	Partial bool `json:"partial,omitempty"`
}

// ── Typed payloads carried in Message.Data ──────────────────────────────────

type AmountPayload struct {
	Type       string     `json:"type"` // "amount"
	Metric     string     `json:"metric"`
	Total      float64    `json:"total"`
	OrderCount int        `json:"orderCount"`
	Customer   string     `json:"customer,omitempty"`
	Store      string     `json:"store,omitempty"`
	Range      *DateRange `json:"dateRange,omitempty"`
}

type BreakdownRow struct {
	Key        string  `json:"key"`
	Amount     float64 `json:"amount"`
	OrderCount int     `json:"orderCount"`
}

type BreakdownPayload struct {
	Type    string         `json:"type"` // "breakdown"
	Metric  string         `json:"metric"`
	GroupBy string         `json:"groupBy"`
	Rows    []BreakdownRow `json:"rows"`
	Total   float64        `json:"total"`
}

type OrderListPayload struct {
	Type   string  `json:"type"` // "orders"
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Orders []Order `json:"orders"`
}

type SuggestionPayload struct {
	Type        string   `json:"type"` // "suggestions"
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type StatusCountPayload struct {
	Type       string         `json:"type"` // "status_counts"
	TotalCount int            `json:"totalCount"`
	ByStatus   map[string]int `json:"byStatus"`
}
