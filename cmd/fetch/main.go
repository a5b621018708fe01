package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
)

// main fetches one date range from the order API and writes an export file.
// Usage: go run cmd/fetch/main.go
// This is a standalone CLI tool, not part of the server
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("OPS DASHBOARD - Order Export")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.ConnectRedis(cfg)

	svc := services.NewOrderServiceFromConfig(cfg, config.RedisClient)
	r, format := getExportOptions(svc.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := svc.Refresh(ctx, r)
	if err != nil {
		fmt.Printf("❌ Fetch failed: %v\n", err)
		os.Exit(1)
	}
	log.Printf("✓ Loaded %d orders (source=%s, skipped=%d)", len(res.Orders), res.Source, res.Skipped)

	body, prefix, err := render(format, res)
	if err != nil {
		log.Fatalf("Failed to build %s export: %v", format, err)
	}

	name := services.AttachmentName(prefix, format, &r)
	if err := os.WriteFile(name, body, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", name, err)
	}

	report := services.BuildRetailerReport(res.Orders, &r)
	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Export written")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("File:      %s (%d bytes)\n", name, len(body))
	fmt.Printf("Range:     %s to %s\n", r.StartDate, r.EndDate)
	fmt.Printf("Orders:    %d\n", len(res.Orders))
	fmt.Printf("Retailers: %d\n", len(report.Retailers))
	fmt.Printf("GMV:       %.2f\n", report.Totals.GMV)
	fmt.Println()
}

func render(format string, res *services.LoadResult) ([]byte, string, error) {
	r := res.Range
	switch format {
	case "xlsx":
		body, err := services.ExportOrdersXLSX(res.Orders)
		return body, "orders", err
	case "pdf":
		body, err := services.ExportRetailersPDF(services.BuildRetailerReport(res.Orders, &r))
		return body, "retailers", err
	default:
		body, err := services.ExportOrdersCSV(res.Orders)
		return body, "orders", err
	}
}

// getExportOptions prompts for the range and format. Empty dates mean month to date.
func getExportOptions(now time.Time) (models.DateRange, string) {
	mtd := utils.MonthToDate(now)
	today := utils.TodayString(now)

	var r models.DateRange
	for {
		fmt.Printf("Start date [%s]: ", mtd.StartDate)
		var start, end string
		fmt.Scanln(&start)
		fmt.Printf("End date [%s]: ", mtd.EndDate)
		fmt.Scanln(&end)

		r = models.DateRange{StartDate: orDefault(start, mtd.StartDate), EndDate: orDefault(end, mtd.EndDate)}
		if err := r.Validate(today); err != nil {
			fmt.Printf("❌ %v\n", err)
			continue
		}
		break
	}

	for {
		fmt.Print("Format (csv, xlsx, pdf) [csv]: ")
		var format string
		fmt.Scanln(&format)
		format = strings.ToLower(orDefault(format, "csv"))
		switch format {
		case "csv", "xlsx", "pdf":
			return r, format
		}
		fmt.Println("❌ Format must be csv, xlsx or pdf")
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
