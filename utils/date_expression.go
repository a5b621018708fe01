package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

const monthPattern = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	monthNameRe  = regexp.MustCompile(`\b(` + monthPattern + `)\b\.?(?:\s*,?\s*(\d{4})\b)?`)
	dayFollowsRe = regexp.MustCompile(`^\s+\d{1,2}(?:st|nd|rd|th)?\b`)
	monthRangeRe = regexp.MustCompile(`\b(` + monthPattern + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*(?:to|through|until|-)\s*(` + monthPattern + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	lastWeekRe   = regexp.MustCompile(`\blast\s+week\b`)
	thisWeekRe   = regexp.MustCompile(`\bthis\s+week\b`)
	thisMonthRe  = regexp.MustCompile(`\bthis\s+month\b`)
	lastMonthRe  = regexp.MustCompile(`\b(?:last|previous)\s+month\b`)
	todayRe      = regexp.MustCompile(`\btoday\b`)
	yesterdayRe  = regexp.MustCompile(`\byesterday\b`)
)

var monthByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// LookupMonth resolves a full or abbreviated English month name.
func LookupMonth(name string) (time.Month, bool) {
	m, ok := monthByName[strings.ToLower(strings.TrimSuffix(name, "."))]
	return m, ok
}

// ParseDateExpression turns informal phrases ("last week", "Oct 2025", "oct 1 to oct 15")
// into a concrete range relative to now. It returns nil when the text holds no date
// expression, which callers treat as "no date constraint".
func ParseDateExpression(text string, now time.Time) *models.DateRange {
	lower := strings.ToLower(text)
	today := dateOnly(now)

	if r := parseMonthName(lower, today); r != nil {
		return r
	}

	if lastWeekRe.MatchString(lower) {
		sunday := today.AddDate(0, 0, -int(today.Weekday())-7)
		r := models.NewDateRange(sunday, sunday.AddDate(0, 0, 6))
		return &r
	}

	if thisWeekRe.MatchString(lower) {
		sunday := today.AddDate(0, 0, -int(today.Weekday()))
		r := models.NewDateRange(sunday, today)
		return &r
	}

	if thisMonthRe.MatchString(lower) {
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		r := models.NewDateRange(first, today)
		r.IsMTD = true
		return &r
	}

	if lastMonthRe.MatchString(lower) {
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, today.Location())
		r := models.NewDateRange(first, first.AddDate(0, 1, -1))
		return &r
	}

	if todayRe.MatchString(lower) {
		r := models.NewDateRange(today, today)
		return &r
	}

	if yesterdayRe.MatchString(lower) {
		y := today.AddDate(0, 0, -1)
		r := models.NewDateRange(y, y)
		return &r
	}

	if m := monthRangeRe.FindStringSubmatch(lower); m != nil {
		startMonth, _ := LookupMonth(m[1])
		endMonth, _ := LookupMonth(m[3])
		startDay, _ := strconv.Atoi(m[2])
		endDay, _ := strconv.Atoi(m[4])
		start := time.Date(today.Year(), startMonth, startDay, 0, 0, 0, 0, today.Location())
		end := time.Date(today.Year(), endMonth, endDay, 0, 0, 0, 0, today.Location())
		r := models.NewDateRange(start, end)
		return &r
	}

	return nil
}

// parseMonthName handles "october", "oct 2025", "Sept, 2024". A month directly followed by a
// day number ("oct 1 to oct 15") is a day expression and is left to the range rule. "may" at
// the start of the text counts only with a year or day number.
func parseMonthName(lower string, today time.Time) *models.DateRange {
	for _, loc := range monthNameRe.FindAllStringSubmatchIndex(lower, -1) {
		if loc[4] < 0 && dayFollowsRe.MatchString(lower[loc[1]:]) {
			continue
		}
		// "May I see ..." opens with the modal verb; a bare leading "may" is not a month.
		name := lower[loc[2]:loc[3]]
		if name == "may" && loc[4] < 0 && strings.TrimSpace(lower[:loc[2]]) == "" {
			continue
		}

		month, ok := LookupMonth(name)
		if !ok {
			continue
		}

		year := today.Year()
		if loc[4] >= 0 {
			year, _ = strconv.Atoi(lower[loc[4]:loc[5]])
		} else if int(month)-int(today.Month()) > 2 {
			year--
		}

		start := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
		end := start.AddDate(0, 1, -1)
		r := models.NewDateRange(start, end)
		if end.After(today) && !start.After(today) {
			r.EndDate = today.Format(models.DateLayout)
			r.IsMTD = true
		}
		return &r
	}
	return nil
}

// TodayString formats now as a calendar date.
func TodayString(now time.Time) string {
	return now.Format(models.DateLayout)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthToDate is the range from the first of now's month through now.
func MonthToDate(now time.Time) models.DateRange {
	today := dateOnly(now)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	r := models.NewDateRange(first, today)
	r.IsMTD = true
	return r
}
