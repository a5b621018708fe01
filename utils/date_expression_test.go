package utils

import (
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestParseDateExpression(t *testing.T) {
	now := day(2026, time.October, 16) // Friday

	tests := []struct {
		text string
		want *models.DateRange
	}{
		{"revenue for October", &models.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-16", IsMTD: true}},
		{"orders in Oct 2025", &models.DateRange{StartDate: "2025-10-01", EndDate: "2025-10-31"}},
		{"tips for sept, 2024", &models.DateRange{StartDate: "2024-09-01", EndDate: "2024-09-30"}},
		{"revenue for january", &models.DateRange{StartDate: "2026-01-01", EndDate: "2026-01-31"}},
		{"december sales", &models.DateRange{StartDate: "2026-12-01", EndDate: "2026-12-31"}},
		{"last week", &models.DateRange{StartDate: "2026-10-04", EndDate: "2026-10-10"}},
		{"orders this week", &models.DateRange{StartDate: "2026-10-11", EndDate: "2026-10-16"}},
		{"this month", &models.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-16", IsMTD: true}},
		{"last month", &models.DateRange{StartDate: "2026-09-01", EndDate: "2026-09-30"}},
		{"today", &models.DateRange{StartDate: "2026-10-16", EndDate: "2026-10-16"}},
		{"yesterday", &models.DateRange{StartDate: "2026-10-15", EndDate: "2026-10-15"}},
		{"oct 1 to oct 15", &models.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-15"}},
		{"Sep 28th through Oct 3rd", &models.DateRange{StartDate: "2026-09-28", EndDate: "2026-10-03"}},
		{"May I see the revenue for this week?", &models.DateRange{StartDate: "2026-10-11", EndDate: "2026-10-16"}},
		{"May 2025 revenue", &models.DateRange{StartDate: "2025-05-01", EndDate: "2025-05-31"}},
		{"revenue for may", &models.DateRange{StartDate: "2026-05-01", EndDate: "2026-05-31"}},
		{"may I have the totals", nil},
		{"how many orders", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseDateExpression(tt.text, now)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("ParseDateExpression(%q) = %v, want %v", tt.text, got, tt.want)
			continue
		}
		if got != nil && *got != *tt.want {
			t.Errorf("ParseDateExpression(%q) = %+v, want %+v", tt.text, *got, *tt.want)
		}
	}
}

func TestParseDateExpressionInfersPriorYear(t *testing.T) {
	now := day(2026, time.February, 10)
	got := ParseDateExpression("revenue for december", now)
	if got == nil || got.StartDate != "2025-12-01" || got.EndDate != "2025-12-31" {
		t.Fatalf("ParseDateExpression(december) = %+v, want 2025-12-01..2025-12-31", got)
	}

	// April is exactly two months ahead, so the current year is kept.
	got = ParseDateExpression("april", now)
	if got == nil || got.StartDate != "2026-04-01" {
		t.Fatalf("ParseDateExpression(april) = %+v, want 2026-04-01 start", got)
	}
}

func TestLastWeekIsSundayToSaturday(t *testing.T) {
	base := day(2026, time.October, 11) // Sunday
	for i := 0; i < 7; i++ {
		now := base.AddDate(0, 0, i)
		got := ParseDateExpression("last week", now)
		if got == nil {
			t.Fatalf("last week on %s returned nil", now.Weekday())
		}
		start, _ := time.Parse(models.DateLayout, got.StartDate)
		end, _ := time.Parse(models.DateLayout, got.EndDate)
		if start.Weekday() != time.Sunday || end.Weekday() != time.Saturday {
			t.Errorf("on %s: got %s (%s) .. %s (%s)", now.Weekday(), got.StartDate, start.Weekday(), got.EndDate, end.Weekday())
		}
		if end.Sub(start) != 6*24*time.Hour {
			t.Errorf("on %s: range %s spans %v", now.Weekday(), got, end.Sub(start))
		}
		if got.StartDate != "2026-10-04" {
			t.Errorf("on %s: start = %s, want 2026-10-04", now.Weekday(), got.StartDate)
		}
	}
}

func TestMonthToDate(t *testing.T) {
	got := MonthToDate(day(2026, time.October, 16))
	want := models.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-16", IsMTD: true}
	if got != want {
		t.Errorf("MonthToDate = %+v, want %+v", got, want)
	}
}
