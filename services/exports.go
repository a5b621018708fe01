package services

import (
	"fmt"
	"log"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gocarina/gocsv"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// OrderExportRow is one line of the orders CSV/XLSX export. Money is kept as fixed two-decimal text.
type OrderExportRow struct {
	ID             string `csv:"Order ID"`
	OrderDate      string `csv:"Order Date"`
	DeliveryDate   string `csv:"Delivery Date"`
	Customer       string `csv:"Customer"`
	Retailer       string `csv:"Retailer"`
	Status         string `csv:"Status"`
	DeliveryStatus string `csv:"Delivery Status"`
	Total          string `csv:"Total"`
	Revenue        string `csv:"Revenue"`
	Tax            string `csv:"Tax"`
	Tip            string `csv:"Tip"`
	DeliveryFee    string `csv:"Delivery Fee"`
	ServiceCharge  string `csv:"Service Charge"`
	Fee            string `csv:"Fee"`
}

// RetailerExportRow is one line of the retailer summary export.
type RetailerExportRow struct {
	Retailer    string `csv:"Retailer"`
	OrderCount  int    `csv:"Orders"`
	GMV         string `csv:"GMV"`
	ServiceFee  string `csv:"Service Fee"`
	RetailerFee string `csv:"Retailer Fee"`
}

var (
	orderExportHeaders    = []string{"Order ID", "Order Date", "Delivery Date", "Customer", "Retailer", "Status", "Delivery Status", "Total", "Revenue", "Tax", "Tip", "Delivery Fee", "Service Charge", "Fee"}
	retailerExportHeaders = []string{"Retailer", "Orders", "GMV", "Service Fee", "Retailer Fee"}
)

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func orderExportRows(orders []models.Order) []*OrderExportRow {
	rows := make([]*OrderExportRow, 0, len(orders))
	for _, o := range orders {
		fee, _ := CalculateOrderFee(o)
		rows = append(rows, &OrderExportRow{
			ID:             o.ID,
			OrderDate:      o.OrderDate,
			DeliveryDate:   o.DeliveryDate,
			Customer:       o.CustomerName,
			Retailer:       o.Establishment,
			Status:         string(o.Status),
			DeliveryStatus: o.DeliveryStatus,
			Total:          formatMoney(o.Total),
			Revenue:        formatMoney(o.Revenue),
			Tax:            formatMoney(o.Tax),
			Tip:            formatMoney(o.Tip),
			DeliveryFee:    formatMoney(o.DeliveryFee),
			ServiceCharge:  formatMoney(o.ServiceCharge),
			Fee:            formatMoney(fee),
		})
	}
	return rows
}

func retailerExportRows(report models.RetailerReport) []*RetailerExportRow {
	summaries := make([]models.RetailerSummary, 0, len(report.Retailers)+1)
	summaries = append(summaries, report.Retailers...)
	summaries = append(summaries, report.Totals)

	rows := make([]*RetailerExportRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, &RetailerExportRow{
			Retailer:    s.Retailer,
			OrderCount:  s.OrderCount,
			GMV:         formatMoney(s.GMV),
			ServiceFee:  formatMoney(s.ServiceFee),
			RetailerFee: formatMoney(s.RetailerFee),
		})
	}
	return rows
}

// ExportOrdersCSV renders orders as CSV. Fields containing commas or quotes are quoted.
func ExportOrdersCSV(orders []models.Order) ([]byte, error) {
	out, err := gocsv.MarshalBytes(orderExportRows(orders))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal orders csv: %w", err)
	}
	return out, nil
}

func ExportRetailersCSV(report models.RetailerReport) ([]byte, error) {
	out, err := gocsv.MarshalBytes(retailerExportRows(report))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal retailers csv: %w", err)
	}
	return out, nil
}

// ExportOrdersXLSX writes a single "Orders" sheet.
func ExportOrdersXLSX(orders []models.Order) ([]byte, error) {
	rows := orderExportRows(orders)
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			r.ID, r.OrderDate, r.DeliveryDate, r.Customer, r.Retailer, r.Status, r.DeliveryStatus,
			r.Total, r.Revenue, r.Tax, r.Tip, r.DeliveryFee, r.ServiceCharge, r.Fee,
		})
	}
	return writeWorkbook("Orders", orderExportHeaders, values)
}

// ExportRetailersXLSX writes the retailer report with its totals row last.
func ExportRetailersXLSX(report models.RetailerReport) ([]byte, error) {
	rows := retailerExportRows(report)
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{r.Retailer, r.OrderCount, r.GMV, r.ServiceFee, r.RetailerFee})
	}
	return writeWorkbook("Retailers", retailerExportHeaders, values)
}

func writeWorkbook(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[exports.xlsx] WARN close workbook err=%v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportRetailersPDF renders the retailer report as a one-table A4 document.
func ExportRetailersPDF(report models.RetailerReport) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("RETAILER REPORT", props.Text{
				Size:  20,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	period := "All loaded orders"
	if report.Range != nil {
		period = fmt.Sprintf("%s to %s", report.Range.StartDate, report.Range.EndDate)
	}
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(period, props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
	})

	m.Row(8, func() {})

	headerCell := func(text string, size uint, align consts.Align) {
		m.Col(size, func() {
			m.Text(text, props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: align,
			})
		})
	}
	m.Row(6, func() {
		headerCell("Retailer", 4, consts.Left)
		headerCell("Orders", 2, consts.Right)
		headerCell("GMV", 2, consts.Right)
		headerCell("Service Fee", 2, consts.Right)
		headerCell("Retailer Fee", 2, consts.Right)
	})

	summaryRow := func(s models.RetailerSummary, style consts.Style) {
		cell := func(text string, size uint, align consts.Align) {
			m.Col(size, func() {
				m.Text(text, props.Text{
					Size:  9,
					Style: style,
					Color: darkGray,
					Align: align,
				})
			})
		}
		m.Row(6, func() {
			cell(s.Retailer, 4, consts.Left)
			cell(fmt.Sprintf("%d", s.OrderCount), 2, consts.Right)
			cell("$"+formatMoney(s.GMV), 2, consts.Right)
			cell("$"+formatMoney(s.ServiceFee), 2, consts.Right)
			cell("$"+formatMoney(s.RetailerFee), 2, consts.Right)
		})
	}

	for _, s := range report.Retailers {
		summaryRow(s, consts.Normal)
	}
	m.Row(4, func() {})
	summaryRow(report.Totals, consts.Bold)

	buf, err := m.Output()
	if err != nil {
		log.Printf("[exports.pdf] ERROR failed to generate PDF: %v", err)
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// AttachmentName builds "<prefix>-<start>_<end>.<ext>", or "<prefix>.<ext>" without a range.
func AttachmentName(prefix, ext string, r *models.DateRange) string {
	if r == nil {
		return prefix + "." + ext
	}
	return fmt.Sprintf("%s-%s_%s.%s", prefix, r.StartDate, r.EndDate, ext)
}
