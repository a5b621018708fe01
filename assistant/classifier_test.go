package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
}

func testOrders() []models.Order {
	return []models.Order{
		{
			ID: "A-100", OrderDate: "2026-10-02", Status: models.StatusPending,
			Revenue: 100, Tip: 5, Tax: 8,
			CustomerName: "Air Culinaire", Establishment: "Freshco",
			Address: "100 Main St, Austin, TX 78701",
		},
		{
			ID: "A-101", OrderDate: "2026-10-05", Status: models.StatusDelivered, DeliveryStatus: "On Time",
			Revenue: 200, Tip: 10, Tax: 16, ServiceCharge: 10, DeliveryFee: 12,
			CustomerName: "Air Culinaire", Establishment: "Freshco",
			Address: "100 Main St, Austin, TX 78701",
		},
		{
			ID: "B-200", OrderDate: "2026-10-07", Status: models.StatusInTransit, DeliveryStatus: "Delayed",
			Revenue: 50, Tip: 2.5, Tax: 4, ServiceCharge: 2.5,
			CustomerName: "Jet Aviation", Establishment: "Harbor Deli",
			Address: "22 Pier Rd, Miami, FL 33101",
		},
		{
			ID: "C-300", OrderDate: "2026-09-20", Status: models.StatusCanceled,
			Revenue: 80, Tip: 4, Tax: 6,
			CustomerName: "Signature Flight Support", Establishment: "Maison Laurent",
			Address: "9 Terminal Way, Teterboro, NJ 07608",
		},
	}
}

func classify(text string, hint *models.IntentHint) Result {
	return NewClassifier(fixedNow).Classify(Input{Text: text, Hint: hint, Orders: testOrders()})
}

func TestRevenueCountsAcceptedOrdersOnly(t *testing.T) {
	orders := []models.Order{
		{ID: "1", OrderDate: "2026-10-01", Status: models.StatusPending, Revenue: 100},
		{ID: "2", OrderDate: "2026-10-02", Status: models.StatusDelivered, Revenue: 200},
	}
	res := NewClassifier(fixedNow).Classify(Input{Text: "what was our revenue?", Orders: orders})
	if res.Intent != models.IntentRevenue {
		t.Fatalf("intent = %s, want revenue", res.Intent)
	}
	p, ok := res.Data.(models.AmountPayload)
	if !ok {
		t.Fatalf("data = %T, want AmountPayload", res.Data)
	}
	if p.Total != 200 || p.OrderCount != 1 {
		t.Errorf("total=%v count=%d, want 200 and 1", p.Total, p.OrderCount)
	}
}

func TestClassifyAmounts(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		intent string
		total  float64
		count  int
	}{
		{"month to date revenue", "What was our revenue for October?", models.IntentRevenue, 250, 2},
		{"customer revenue", "How much revenue did we get from Air Culinaire in October?", models.IntentRevenueByCustomer, 200, 1},
		{"store named in revenue question", "revenue from Harbor Deli this month", models.IntentRevenueByCustomer, 50, 1},
		{"total sales", "What were total sales last week?", models.IntentRevenue, 250, 2},
		{"sales month to date", "sales this month", models.IntentRevenue, 250, 2},
		{"store sales", "sales for Freshco this month", models.IntentRevenueByStore, 200, 1},
		{"tips", "total tips this month", models.IntentTip, 12.5, 2},
		{"service charges", "service charges in October", models.IntentServiceCharge, 12.5, 2},
		{"delivery fees", "delivery fees", models.IntentDeliveryCharge, 12, 2},
		{"tax", "how much tax did we collect", models.IntentTax, 20, 2},
		{"average order value", "average order value", models.IntentAverageOrderValue, 125, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := classify(tt.text, nil)
			if res.Intent != tt.intent {
				t.Fatalf("intent = %s, want %s (content %q)", res.Intent, tt.intent, res.Content)
			}
			p, ok := res.Data.(models.AmountPayload)
			if !ok {
				t.Fatalf("data = %T, want AmountPayload", res.Data)
			}
			if p.Total != tt.total || p.OrderCount != tt.count {
				t.Errorf("total=%v count=%d, want %v and %d", p.Total, p.OrderCount, tt.total, tt.count)
			}
		})
	}
}

func TestMissingCustomerGetsSuggestions(t *testing.T) {
	// Air Culinaire only has October orders; September holds Signature Flight Support.
	res := classify("revenue from Air Culinaire last month", nil)
	if res.Intent != models.IntentRevenueByCustomer {
		t.Fatalf("intent = %s", res.Intent)
	}
	p, ok := res.Data.(models.SuggestionPayload)
	if !ok {
		t.Fatalf("data = %T, want SuggestionPayload", res.Data)
	}
	if len(p.Suggestions) != 1 || p.Suggestions[0] != "Air Culinaire" {
		t.Errorf("suggestions = %v", p.Suggestions)
	}
	if !strings.Contains(res.Content, "Did you mean") {
		t.Errorf("content = %q", res.Content)
	}

	// A misspelled name close to nothing loaded falls back to names with orders in range.
	res = classify("revenue from Zephyr Wings last month", nil)
	p, ok = res.Data.(models.SuggestionPayload)
	if !ok {
		t.Fatalf("data = %T, want SuggestionPayload", res.Data)
	}
	if len(p.Suggestions) != 1 || p.Suggestions[0] != "Signature Flight Support" {
		t.Errorf("suggestions = %v", p.Suggestions)
	}
}

func TestFuzzyCustomerMatchIsNamed(t *testing.T) {
	res := classify("revenue for customer air culinaire inc", nil)
	p, ok := res.Data.(models.AmountPayload)
	if !ok {
		t.Fatalf("data = %T, want AmountPayload", res.Data)
	}
	if p.Customer != "Air Culinaire" || p.Total != 200 {
		t.Errorf("payload = %+v", p)
	}
	if !strings.Contains(res.Content, "(matched Air Culinaire)") {
		t.Errorf("content = %q", res.Content)
	}
}

func TestClassifyLists(t *testing.T) {
	tests := []struct {
		text   string
		intent string
		ids    []string
	}{
		{"Show delayed orders", models.IntentDelayed, []string{"B-200"}},
		{"Any delayed orders for Jet Aviation?", models.IntentDelayedByCustomer, []string{"B-200"}},
		{"how many pending orders", models.IntentPending, []string{"A-100"}},
		{"which orders have not been delivered", models.IntentNotDelivered, []string{"A-100", "B-200"}},
		{"delivered orders", models.IntentDelivered, []string{"A-101"}},
		{"accepted orders last month", models.IntentAccepted, []string{}},
		{"what's the status of order B-200", models.IntentStatusCheck, []string{"B-200"}},
	}
	for _, tt := range tests {
		res := classify(tt.text, nil)
		if res.Intent != tt.intent {
			t.Errorf("%q: intent = %s, want %s", tt.text, res.Intent, tt.intent)
			continue
		}
		p, ok := res.Data.(models.OrderListPayload)
		if !ok {
			t.Errorf("%q: data = %T, want OrderListPayload", tt.text, res.Data)
			continue
		}
		if p.Count != len(tt.ids) {
			t.Errorf("%q: count = %d, want %d", tt.text, p.Count, len(tt.ids))
			continue
		}
		for i, id := range tt.ids {
			if p.Orders[i].ID != id {
				t.Errorf("%q: order[%d] = %s, want %s", tt.text, i, p.Orders[i].ID, id)
			}
		}
	}
}

func TestClassifyBreakdowns(t *testing.T) {
	res := classify("revenue by store this month", nil)
	if res.Intent != models.IntentRevenueByStore {
		t.Fatalf("intent = %s", res.Intent)
	}
	p := res.Data.(models.BreakdownPayload)
	if len(p.Rows) != 2 || p.Rows[0].Key != "Freshco" || p.Rows[0].Amount != 200 || p.Rows[1].Key != "Harbor Deli" {
		t.Errorf("rows = %+v", p.Rows)
	}
	if p.Total != 250 {
		t.Errorf("total = %v", p.Total)
	}

	res = classify("tax by state", nil)
	if res.Intent != models.IntentTaxByState {
		t.Fatalf("intent = %s", res.Intent)
	}
	p = res.Data.(models.BreakdownPayload)
	if len(p.Rows) != 2 || p.Rows[0].Key != "TX" || p.Rows[0].Amount != 16 || p.Rows[1].Key != "FL" {
		t.Errorf("rows = %+v", p.Rows)
	}

	res = classify("revenue by state this month", nil)
	if res.Intent != models.IntentSalesByState {
		t.Fatalf("intent = %s, want sales_by_state", res.Intent)
	}
	p = res.Data.(models.BreakdownPayload)
	if len(p.Rows) != 2 || p.Rows[0].Key != "TX" || p.Rows[0].Amount != 200 || p.Rows[1].Key != "FL" {
		t.Errorf("rows = %+v", p.Rows)
	}

	res = classify("sales by month", nil)
	p = res.Data.(models.BreakdownPayload)
	if len(p.Rows) != 1 || p.Rows[0].Key != "2026-10" || p.Rows[0].OrderCount != 2 {
		t.Errorf("rows = %+v", p.Rows)
	}
}

func TestClassifyStatusCounts(t *testing.T) {
	res := classify("how many orders", nil)
	if res.Intent != models.IntentTotalOrders {
		t.Fatalf("intent = %s", res.Intent)
	}
	p := res.Data.(models.StatusCountPayload)
	if p.TotalCount != 4 || p.ByStatus["canceled"] != 1 || p.ByStatus["pending"] != 1 {
		t.Errorf("payload = %+v", p)
	}

	res = classify("How many orders did Jet Aviation place?", nil)
	if res.Intent != models.IntentTotalOrders {
		t.Fatalf("intent = %s", res.Intent)
	}
	p = res.Data.(models.StatusCountPayload)
	if p.TotalCount != 1 || p.ByStatus["in_transit"] != 1 {
		t.Errorf("payload = %+v", p)
	}
}

func TestUnknownHintGetsCantHelp(t *testing.T) {
	res := classify("what's the weather", &models.IntentHint{Intent: models.IntentUnknown})
	if res.Intent != models.IntentUnknown || res.Content != cantHelpMessage {
		t.Errorf("result = %+v", res)
	}
	if res.Data != nil {
		t.Errorf("data = %v, want nil", res.Data)
	}
}

func TestHintWithoutIntentKeepsLocalMatching(t *testing.T) {
	hint := &models.IntentHint{DateRange: &models.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-31"}}
	res := classify("what was our revenue", hint)
	if res.Intent != models.IntentRevenue {
		t.Fatalf("intent = %s, want revenue", res.Intent)
	}
	if p := res.Data.(models.AmountPayload); p.Total != 250 {
		t.Errorf("total = %v, want 250", p.Total)
	}
	if res.Range == nil || res.Range.EndDate != "2026-10-31" {
		t.Errorf("range = %v", res.Range)
	}
}

func TestHintOverridesText(t *testing.T) {
	hint := &models.IntentHint{
		Intent:    models.IntentTip,
		DateRange: &models.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-31"},
	}
	res := classify("anything", hint)
	if res.Intent != models.IntentTip {
		t.Fatalf("intent = %s", res.Intent)
	}
	if res.Range == nil || res.Range.EndDate != "2026-10-31" {
		t.Errorf("range = %v", res.Range)
	}
	if p := res.Data.(models.AmountPayload); p.Total != 12.5 {
		t.Errorf("total = %v", p.Total)
	}
}

func TestFallback(t *testing.T) {
	res := classify("tell me a joke", nil)
	if res.Intent != models.IntentFallback || res.Content == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestMatcherPriority(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"late orders for Jet Aviation", models.IntentDelayedByCustomer},
		{"revenue by customer", models.IntentRevenueByCustomer},
		{"sales by month", models.IntentRevenueByMonth},
		{"sales by state", models.IntentSalesByState},
		{"revenue by state", models.IntentSalesByState},
		{"total sales last week", models.IntentRevenue},
		{"tax by state", models.IntentTaxByState},
		{"tips from Jet Aviation", models.IntentTip},
		{"service charges this week", models.IntentServiceCharge},
		{"delivery fees", models.IntentDeliveryCharge},
		{"total tax", models.IntentTax},
		{"undelivered orders", models.IntentNotDelivered},
		{"delivered orders", models.IntentDelivered},
		{"accepted orders", models.IntentAccepted},
		{"how many orders", models.IntentTotalOrders},
		{"hello", models.IntentFallback},
	}
	for _, tt := range tests {
		if got := MatchIntent(tt.text, nil); got != tt.want {
			t.Errorf("MatchIntent(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}
