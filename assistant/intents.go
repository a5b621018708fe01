package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
	"github.com/shopspring/decimal"
)

func revenueOf(o models.Order) float64       { return o.Revenue }
func serviceChargeOf(o models.Order) float64 { return o.ServiceCharge }
func tipOf(o models.Order) float64           { return o.Tip }
func deliveryFeeOf(o models.Order) float64   { return o.DeliveryFee }
func taxOf(o models.Order) float64           { return o.Tax }

func acceptedOnly(orders []models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsAccepted() {
			out = append(out, o)
		}
	}
	return out
}

func where(orders []models.Order, keep func(models.Order) bool) []models.Order {
	out := make([]models.Order, 0)
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func isDelayed(o models.Order) bool {
	return strings.Contains(strings.ToLower(o.DeliveryStatus), "delay") ||
		strings.Contains(strings.ToLower(o.DoordashStatus), "delay")
}

// resolveCustomer returns the in-range orders of the named customer. When none match, the
// returned Result answers with names suggested from every loaded order.
func resolveCustomer(q *query, name string) ([]models.Order, *Result) {
	matched := where(q.orders, func(o models.Order) bool {
		return utils.MatchCustomerName(name, o.CustomerName)
	})
	if len(matched) > 0 {
		return matched, nil
	}
	res := suggestionResult(name, "customer", SuggestNames(name, CustomerNames(q.all)), CustomerNames(q.orders), q.rng)
	return nil, &res
}

func resolveStore(q *query, name string) ([]models.Order, *Result) {
	matched := where(q.orders, func(o models.Order) bool {
		return utils.MatchCustomerName(name, o.Establishment)
	})
	if len(matched) > 0 {
		return matched, nil
	}
	res := suggestionResult(name, "store", SuggestNames(name, RetailerNames(q.all)), RetailerNames(q.orders), q.rng)
	return nil, &res
}

func suggestionResult(name, kind string, suggestions, inRange []string, r *models.DateRange) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "I couldn't find any orders for the %s %q %s.", kind, name, rangeLabel(r))
	switch {
	case len(suggestions) > 0:
		fmt.Fprintf(&b, " Did you mean: %s?", strings.Join(suggestions, ", "))
	case len(inRange) > 0:
		if len(inRange) > maxSuggestions {
			inRange = inRange[:maxSuggestions]
		}
		suggestions = inRange
		fmt.Fprintf(&b, " Names with orders in this period include: %s.", strings.Join(inRange, ", "))
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return Result{
		Content: b.String(),
		Data:    models.SuggestionPayload{Type: "suggestions", Query: name, Suggestions: suggestions},
	}
}

// matchedNote names the matched customers when none of them equals the query exactly.
func matchedNote(query string, names []string) string {
	for _, n := range names {
		if utils.NormalizeName(n) == utils.NormalizeName(query) {
			return ""
		}
	}
	return fmt.Sprintf(" (matched %s)", strings.Join(names, ", "))
}

func amountResult(metric, label string, orders []models.Order, field func(models.Order) float64, q *query) Result {
	accepted := acceptedOnly(orders)
	total := sumMoney(accepted, field)
	return Result{
		Content: fmt.Sprintf("%s %s: %s across %s.", label, rangeLabel(q.rng), formatUSD(total), plural(len(accepted), "accepted order")),
		Data: models.AmountPayload{
			Type:       "amount",
			Metric:     metric,
			Total:      total,
			OrderCount: len(accepted),
			Range:      q.rng,
		},
	}
}

// customerAmount scopes a money metric to the named customer when the question names one.
func customerAmount(q *query, metric, label string, field func(models.Order) float64) Result {
	name := q.customer()
	if name == "" {
		return amountResult(metric, label, q.orders, field, q)
	}
	matched, miss := resolveCustomer(q, name)
	if miss != nil {
		return *miss
	}
	names := CustomerNames(matched)
	res := amountResult(metric, label+" for "+strings.Join(names, ", "), matched, field, q)
	res.Content = strings.TrimSuffix(res.Content, ".") + matchedNote(name, names) + "."
	payload := res.Data.(models.AmountPayload)
	payload.Customer = strings.Join(names, ", ")
	res.Data = payload
	return res
}

func breakdown(metric, groupBy string, orders []models.Order, key func(models.Order) string, field func(models.Order) float64) models.BreakdownPayload {
	type acc struct {
		amount decimal.Decimal
		count  int
	}
	groups := make(map[string]*acc)
	total := decimal.Zero
	for _, o := range orders {
		k := key(o)
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
		}
		v := decimal.NewFromFloat(field(o))
		g.amount = g.amount.Add(v)
		g.count++
		total = total.Add(v)
	}

	rows := make([]models.BreakdownRow, 0, len(groups))
	for k, g := range groups {
		rows = append(rows, models.BreakdownRow{Key: k, Amount: g.amount.Round(2).InexactFloat64(), OrderCount: g.count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if groupBy == "month" {
			return rows[i].Key < rows[j].Key
		}
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Key < rows[j].Key
	})
	return models.BreakdownPayload{Type: "breakdown", Metric: metric, GroupBy: groupBy, Rows: rows, Total: total.Round(2).InexactFloat64()}
}

func breakdownResult(label string, q *query, p models.BreakdownPayload) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s total", label, rangeLabel(q.rng), formatUSD(p.Total))
	for i, r := range p.Rows {
		if i == 5 {
			fmt.Fprintf(&b, "; and %d more", len(p.Rows)-5)
			break
		}
		sep := "; "
		if i == 0 {
			sep = ". "
		}
		fmt.Fprintf(&b, "%s%s %s", sep, r.Key, formatUSD(r.Amount))
	}
	b.WriteString(".")
	return Result{Content: b.String(), Data: p}
}

func orderListResult(label string, q *query, orders []models.Order) Result {
	content := fmt.Sprintf("%s %s: %s.", label, rangeLabel(q.rng), plural(len(orders), "order"))
	if len(orders) > 0 && len(orders) <= 5 {
		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, fmt.Sprintf("%s (%s)", o.ID, o.CustomerName))
		}
		content = strings.TrimSuffix(content, ".") + ": " + strings.Join(ids, ", ") + "."
	}
	return Result{
		Content: content,
		Data:    models.OrderListPayload{Type: "orders", Label: label, Count: len(orders), Orders: orders},
	}
}

// ── Intent runs ─────────────────────────────────────────────────────────────

func runDelayedByCustomer(q *query) Result {
	name := q.customer()
	if name == "" {
		return runDelayed(q)
	}
	matched, miss := resolveCustomer(q, name)
	if miss != nil {
		return *miss
	}
	names := CustomerNames(matched)
	res := orderListResult("Delayed orders for "+strings.Join(names, ", "), q, where(matched, isDelayed))
	res.Content = strings.TrimSuffix(res.Content, ".") + matchedNote(name, names) + "."
	return res
}

func runDelayed(q *query) Result {
	return orderListResult("Delayed orders", q, where(q.orders, isDelayed))
}

func runRevenueByCustomer(q *query) Result {
	name := q.customer()
	if name == "" {
		return breakdownResult("Revenue by customer", q,
			breakdown("revenue", "customer", acceptedOnly(q.orders), func(o models.Order) string { return o.CustomerName }, revenueOf))
	}
	if !anyMatch(q.orders, name, func(o models.Order) string { return o.CustomerName }) &&
		anyMatch(q.orders, name, func(o models.Order) string { return o.Establishment }) {
		return storeRevenue(q, name)
	}
	return customerAmount(q, "revenue", "Revenue", revenueOf)
}

func anyMatch(orders []models.Order, name string, field func(models.Order) string) bool {
	for _, o := range orders {
		if utils.MatchCustomerName(name, field(o)) {
			return true
		}
	}
	return false
}

func runRevenueByStore(q *query) Result {
	if name := q.store(); name != "" {
		return storeRevenue(q, name)
	}
	return breakdownResult("Revenue by store", q,
		breakdown("revenue", "store", acceptedOnly(q.orders), func(o models.Order) string { return o.Establishment }, revenueOf))
}

func storeRevenue(q *query, name string) Result {
	matched, miss := resolveStore(q, name)
	if miss != nil {
		return *miss
	}
	stores := RetailerNames(matched)
	res := amountResult("revenue", "Revenue at "+strings.Join(stores, ", "), matched, revenueOf, q)
	payload := res.Data.(models.AmountPayload)
	payload.Store = strings.Join(stores, ", ")
	res.Data = payload
	return res
}

func runRevenueByMonth(q *query) Result {
	return breakdownResult("Revenue by month", q,
		breakdown("revenue", "month", acceptedOnly(q.orders), func(o models.Order) string {
			if len(o.OrderDate) >= 7 {
				return o.OrderDate[:7]
			}
			return o.OrderDate
		}, revenueOf))
}

func runRevenue(q *query) Result {
	return amountResult("revenue", "Revenue", q.orders, revenueOf, q)
}

func runServiceCharge(q *query) Result {
	return customerAmount(q, "service_charge", "Service charges", serviceChargeOf)
}

func runTip(q *query) Result {
	return customerAmount(q, "tip", "Tips", tipOf)
}

func runDeliveryCharge(q *query) Result {
	return customerAmount(q, "delivery_charge", "Delivery charges", deliveryFeeOf)
}

func stateOf(o models.Order) string { return StateFromAddress(o.Address) }

func runTaxByState(q *query) Result {
	return breakdownResult("Tax by state", q, breakdown("tax", "state", acceptedOnly(q.orders), stateOf, taxOf))
}

func runSalesByState(q *query) Result {
	return breakdownResult("Sales by state", q, breakdown("revenue", "state", acceptedOnly(q.orders), stateOf, revenueOf))
}

func runTax(q *query) Result {
	return customerAmount(q, "tax", "Tax collected", taxOf)
}

func runPending(q *query) Result {
	return orderListResult("Pending orders", q, where(q.orders, func(o models.Order) bool {
		return o.Status == models.StatusPending
	}))
}

func runNotDelivered(q *query) Result {
	return orderListResult("Orders not yet delivered", q, where(q.orders, func(o models.Order) bool {
		switch o.Status {
		case models.StatusDelivered, models.StatusCanceled, models.StatusRejected:
			return false
		}
		return true
	}))
}

func runDelivered(q *query) Result {
	return orderListResult("Delivered orders", q, where(q.orders, func(o models.Order) bool {
		return o.Status == models.StatusDelivered
	}))
}

func runStatusCheck(q *query) Result {
	for _, o := range q.all {
		if len(o.ID) >= 3 && strings.Contains(q.lower, strings.ToLower(o.ID)) {
			content := fmt.Sprintf("Order %s for %s is %s", o.ID, o.CustomerName, o.Status)
			if o.DeliveryStatus != "" {
				content += fmt.Sprintf(" (delivery: %s)", o.DeliveryStatus)
			}
			return Result{
				Content: content + ".",
				Data:    models.OrderListPayload{Type: "orders", Label: "Order " + o.ID, Count: 1, Orders: []models.Order{o}},
			}
		}
	}
	return statusCounts("Order statuses", q, q.orders)
}

func statusCounts(label string, q *query, orders []models.Order) Result {
	byStatus := make(map[string]int)
	for _, o := range orders {
		byStatus[string(o.Status)]++
	}
	keys := make([]string, 0, len(byStatus))
	for k := range byStatus {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, byStatus[k]))
	}

	content := fmt.Sprintf("%s %s: %s", label, rangeLabel(q.rng), plural(len(orders), "order"))
	if len(parts) > 0 {
		content += " (" + strings.Join(parts, ", ") + ")"
	}
	return Result{
		Content: content + ".",
		Data:    models.StatusCountPayload{Type: "status_counts", TotalCount: len(orders), ByStatus: byStatus},
	}
}

func runAccepted(q *query) Result {
	return orderListResult("Accepted orders", q, acceptedOnly(q.orders))
}

func runTotalOrders(q *query) Result {
	name := q.customer()
	if name == "" {
		return statusCounts("Total orders", q, q.orders)
	}
	matched, miss := resolveCustomer(q, name)
	if miss != nil {
		return *miss
	}
	return statusCounts("Total orders for "+strings.Join(CustomerNames(matched), ", "), q, matched)
}

func runAverageOrderValue(q *query) Result {
	orders := q.orders
	label := "Average order value"
	if name := q.customer(); name != "" {
		matched, miss := resolveCustomer(q, name)
		if miss != nil {
			return *miss
		}
		orders = matched
		label += " for " + strings.Join(CustomerNames(matched), ", ")
	}

	accepted := acceptedOnly(orders)
	avg := 0.0
	if len(accepted) > 0 {
		avg = decimal.NewFromFloat(sumMoney(accepted, revenueOf)).
			Div(decimal.NewFromInt(int64(len(accepted)))).
			Round(2).
			InexactFloat64()
	}
	return Result{
		Content: fmt.Sprintf("%s %s: %s over %s.", label, rangeLabel(q.rng), formatUSD(avg), plural(len(accepted), "accepted order")),
		Data: models.AmountPayload{
			Type:       "amount",
			Metric:     "average_order_value",
			Total:      avg,
			OrderCount: len(accepted),
			Range:      q.rng,
		},
	}
}

func runFallback(q *query) Result {
	return Result{
		Content: fmt.Sprintf("I have %s loaded %s. Try asking about revenue, tips, taxes, "+
			"delayed or pending orders, or revenue for a specific customer or store.",
			plural(len(q.orders), "order"), rangeLabel(q.rng)),
	}
}
