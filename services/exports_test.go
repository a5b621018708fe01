package services

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

func exportOrders() []models.Order {
	return []models.Order{
		{ID: "A-1", OrderDate: "2026-10-01", CustomerName: "Air Culinaire, Worldwide", Establishment: "Freshco",
			Status: models.StatusDelivered, Total: 123.456, Revenue: 99.999, Tax: 8.1, Tip: 0.005, DeliveryFee: 12, ServiceCharge: 4.35},
		{ID: "A-2", OrderDate: "2026-10-02", CustomerName: `The "Jet" Group`, Establishment: "Harbor Deli",
			Status: models.StatusPending, Total: 1, Revenue: 0.1, Tax: 0.2},
	}
}

func TestExportOrdersCSVRoundTripsMoney(t *testing.T) {
	orders := exportOrders()
	out, err := ExportOrdersCSV(orders)
	if err != nil {
		t.Fatalf("ExportOrdersCSV: %v", err)
	}

	var rows []*OrderExportRow
	if err := gocsv.UnmarshalBytes(out, &rows); err != nil {
		t.Fatalf("UnmarshalBytes: %v\n%s", err, out)
	}
	if len(rows) != len(orders) {
		t.Fatalf("got %d rows, want %d", len(rows), len(orders))
	}

	for i, o := range orders {
		r := rows[i]
		if r.Customer != o.CustomerName {
			t.Errorf("row %d customer = %q, want %q", i, r.Customer, o.CustomerName)
		}
		checks := []struct {
			field string
			text  string
			want  float64
		}{
			{"total", r.Total, o.Total},
			{"revenue", r.Revenue, o.Revenue},
			{"tax", r.Tax, o.Tax},
			{"tip", r.Tip, o.Tip},
		}
		for _, c := range checks {
			got, err := strconv.ParseFloat(c.text, 64)
			if err != nil {
				t.Errorf("row %d %s = %q: %v", i, c.field, c.text, err)
				continue
			}
			if formatMoney(got) != formatMoney(c.want) {
				t.Errorf("row %d %s = %v, want %v to 2 decimals", i, c.field, got, c.want)
			}
		}
	}
}

func TestExportRetailersCSVIncludesTotals(t *testing.T) {
	report := BuildRetailerReport(exportOrders(), nil)
	out, err := ExportRetailersCSV(report)
	if err != nil {
		t.Fatalf("ExportRetailersCSV: %v", err)
	}
	var rows []*RetailerExportRow
	if err := gocsv.UnmarshalBytes(out, &rows); err != nil {
		t.Fatalf("UnmarshalBytes: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want retailer + totals", len(rows))
	}
	if rows[1].Retailer != "Total" || rows[1].GMV != "100.00" || rows[1].OrderCount != 1 {
		t.Errorf("totals row = %+v", rows[1])
	}
}

func TestExportOrdersXLSX(t *testing.T) {
	out, err := ExportOrdersXLSX(exportOrders())
	if err != nil {
		t.Fatalf("ExportOrdersXLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Orders")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "Order ID" || rows[1][0] != "A-1" || rows[1][8] != "100.00" {
		t.Errorf("unexpected sheet contents: %v", rows[:2])
	}
}

func TestExportRetailersPDF(t *testing.T) {
	out, err := ExportRetailersPDF(BuildRetailerReport(exportOrders(), &octRange))
	if err != nil {
		t.Fatalf("ExportRetailersPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", out[:min(len(out), 8)])
	}
}

func TestAttachmentName(t *testing.T) {
	if got := AttachmentName("orders", "csv", nil); got != "orders.csv" {
		t.Errorf("got %q", got)
	}
	if got := AttachmentName("retailers", "pdf", &octRange); got != "retailers-2026-10-01_2026-10-15.pdf" {
		t.Errorf("got %q", got)
	}
}
