package assistant

import (
	"fmt"
	"strings"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/shopspring/decimal"
)

// formatUSD renders 1234.5 as "$1,234.50".
func formatUSD(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

func rangeLabel(r *models.DateRange) string {
	if r == nil {
		return "across all loaded orders"
	}
	if r.StartDate == r.EndDate {
		return "on " + r.StartDate
	}
	label := fmt.Sprintf("from %s to %s", r.StartDate, r.EndDate)
	if r.IsMTD {
		label += " (month to date)"
	}
	return label
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func sumMoney(orders []models.Order, field func(models.Order) float64) float64 {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(decimal.NewFromFloat(field(o)))
	}
	return total.Round(2).InexactFloat64()
}
