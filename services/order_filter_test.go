package services

import (
	"testing"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

func reportOrders() []models.Order {
	return []models.Order{
		{ID: "1", OrderDate: "2026-10-01", Establishment: "Freshco", CustomerName: "Acme", Revenue: 100, ServiceCharge: 5, Status: models.StatusDelivered},
		{ID: "2", OrderDate: "2026-10-02", Establishment: "Freshco", CustomerName: "VistaJet", Revenue: 50, ServiceCharge: 2.5, Status: models.StatusAccepted},
		{ID: "3", OrderDate: "2026-10-03", Establishment: "Maison Laurent", CustomerName: "Air Culinaire Worldwide", Revenue: 400, ServiceCharge: 20, Status: models.StatusInTransit, DeliveryStatus: "Delayed"},
		{ID: "4", OrderDate: "2026-10-04", Establishment: "Maison Laurent", CustomerName: "Acme", Revenue: 999, Status: models.StatusPending},
		{ID: "5", OrderDate: "2026-10-20", Establishment: "Harbor Deli", CustomerName: "NetJets", Revenue: 10, Status: models.StatusCanceled},
	}
}

func TestFilterOrders(t *testing.T) {
	orders := reportOrders()
	tests := []struct {
		name string
		f    models.OrderFilter
		want []string
	}{
		{"no filter", models.OrderFilter{}, []string{"1", "2", "3", "4", "5"}},
		{"range inclusive", models.OrderFilter{Range: &models.DateRange{StartDate: "2026-10-02", EndDate: "2026-10-04"}}, []string{"2", "3", "4"}},
		{"retailer case-insensitive", models.OrderFilter{Retailer: "freshco"}, []string{"1", "2"}},
		{"customer fuzzy", models.OrderFilter{Customer: "air culinaire"}, []string{"3"}},
		{"status", models.OrderFilter{Status: "Pending"}, []string{"4"}},
		{"delivery status", models.OrderFilter{DeliveryStatus: "delay"}, []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOrders(orders, tt.f)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d orders, want %v", len(got), tt.want)
			}
			for i, o := range got {
				if o.ID != tt.want[i] {
					t.Errorf("order[%d] = %s, want %s", i, o.ID, tt.want[i])
				}
			}
		})
	}
}

func TestBuildRetailerSummaries(t *testing.T) {
	got := BuildRetailerSummaries(reportOrders())
	if len(got) != 2 {
		t.Fatalf("got %d retailers, want 2 (pending and canceled excluded): %+v", len(got), got)
	}

	ml := got[0]
	if ml.Retailer != "Maison Laurent" || ml.GMV != 400 || ml.RetailerFee != 100 || ml.OrderCount != 1 {
		t.Errorf("first summary = %+v", ml)
	}

	// Freshco: 100 × 0.10 + 50 × 0.08 (VistaJet rule wins over the retailer rule).
	fc := got[1]
	if fc.Retailer != "Freshco" || fc.GMV != 150 || fc.ServiceFee != 7.5 || fc.RetailerFee != 14 || fc.OrderCount != 2 {
		t.Errorf("second summary = %+v", fc)
	}
}

func TestBuildRetailerReportTotals(t *testing.T) {
	report := BuildRetailerReport(reportOrders(), nil)
	if report.Totals.GMV != 550 || report.Totals.RetailerFee != 114 || report.Totals.OrderCount != 3 {
		t.Errorf("totals = %+v", report.Totals)
	}
}

func TestBuildFeeAllocations(t *testing.T) {
	got := BuildFeeAllocations(reportOrders())
	if len(got) != 3 {
		t.Fatalf("got %d allocations, want 3", len(got))
	}
	want := []struct {
		id   string
		rate float64
		fee  float64
	}{
		{"1", 0.10, 10},
		{"2", 0.08, 4},
		{"3", 0.25, 100},
	}
	for i, w := range want {
		if got[i].OrderID != w.id || got[i].Rate != w.rate || got[i].Fee != w.fee {
			t.Errorf("allocation[%d] = %+v, want %+v", i, got[i], w)
		}
	}
}
