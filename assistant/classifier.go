package assistant

import (
	"regexp"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
)

const cantHelpMessage = "Sorry, I can only answer questions about orders, revenue, fees, taxes and deliveries."

// Input is one question to classify against the loaded orders.
type Input struct {
	Text   string
	Hint   *models.IntentHint // optional, from the prompt parser
	Orders []models.Order     // everything currently loaded
}

// Result is the classifier's answer. Data holds one of the typed payloads in models.
type Result struct {
	Intent  string            `json:"intent"`
	Content string            `json:"content"`
	Data    any               `json:"data"`
	Range   *models.DateRange `json:"dateRange,omitempty"`
}

// query is what matchers see: the input with its range resolved and orders filtered.
type query struct {
	text   string
	lower  string
	hint   *models.IntentHint
	rng    *models.DateRange
	orders []models.Order // loaded orders inside rng
	all    []models.Order // every loaded order
}

func (q *query) hinted(intent string) bool {
	return q.hint != nil && q.hint.Intent == intent
}

func (q *query) has(re *regexp.Regexp) bool {
	return re.MatchString(q.lower)
}

// customer is the hint's customer, else a name extracted from the text.
func (q *query) customer() string {
	if q.hint != nil && q.hint.Customer != "" {
		return q.hint.Customer
	}
	return ExtractCustomerName(q.text)
}

// store is the hint's brand, else a store name extracted from the text.
func (q *query) store() string {
	if q.hint != nil && q.hint.Brand != "" {
		return q.hint.Brand
	}
	return ExtractStoreName(q.text)
}

// matcher pairs an intent with its trigger and its aggregation.
type matcher struct {
	intent string
	match  func(q *query) bool
	run    func(q *query) Result
}

var (
	delayRe         = regexp.MustCompile(`\b(?:delay(?:ed|s)?|late|running behind|behind schedule)\b`)
	revenueRe       = regexp.MustCompile(`\b(?:revenue|gmv|gross merchandise|earn(?:ed|ings)?|income)\b`)
	salesRe         = regexp.MustCompile(`\b(?:sales|sold|revenue|gmv)\b`)
	byCustomerRe    = regexp.MustCompile(`\b(?:by|per|each|every|top)\s+(?:customer|client)s?\b|\bcustomer\s+breakdown\b`)
	byStoreRe       = regexp.MustCompile(`\b(?:by|per|each|every|top)\s+(?:store|retailer|brand|restaurant|establishment)s?\b|\b(?:store|retailer)\s+breakdown\b`)
	byMonthRe       = regexp.MustCompile(`\b(?:by|per|each|every)\s+month\b|\bmonthly\b|\bmonth over month\b`)
	serviceChargeRe = regexp.MustCompile(`\bservice\s+(?:charge|fee)s?\b`)
	tipRe           = regexp.MustCompile(`\btip(?:s|ped)?\b|\bgratuit(?:y|ies)\b`)
	deliveryFeeRe   = regexp.MustCompile(`\bdelivery\s+(?:charge|fee|cost)s?\b|\bshipping\b`)
	taxRe           = regexp.MustCompile(`\btax(?:es)?\b`)
	stateRe         = regexp.MustCompile(`\bstates?\b`)
	pendingRe       = regexp.MustCompile(`\bpending\b|\bawaiting\b`)
	notDeliveredRe  = regexp.MustCompile(`\bnot\s+(?:yet\s+|been\s+)?delivered\b|\bundelivered\b|\b(?:haven'?t|have not|hasn'?t|has not)\s+been\s+delivered\b|\boutstanding\b`)
	deliveredRe     = regexp.MustCompile(`\bdelivered\b`)
	statusRe        = regexp.MustCompile(`\bstatus(?:es)?\b|\bwhere is\b`)
	acceptedRe      = regexp.MustCompile(`\baccepted\b|\bconfirmed\b`)
	totalOrdersRe   = regexp.MustCompile(`\bhow many\b|\bnumber of orders\b|\btotal orders\b|\border count\b|\bcount\b`)
	averageRe       = regexp.MustCompile(`\baverage\b|\bavg\b|\baov\b|\bmean\b`)
)

// matchers is evaluated top to bottom and the first match wins. Several triggers overlap
// ("revenue" also appears in "revenue by store"), so specific intents precede general ones.
var matchers = []matcher{
	{models.IntentDelayedByCustomer, func(q *query) bool {
		return q.hinted(models.IntentDelayedByCustomer) || (q.has(delayRe) && q.customer() != "")
	}, runDelayedByCustomer},
	{models.IntentDelayed, func(q *query) bool {
		return q.hinted(models.IntentDelayed) || q.has(delayRe)
	}, runDelayed},
	{models.IntentRevenueByCustomer, func(q *query) bool {
		return q.hinted(models.IntentRevenueByCustomer) ||
			(q.has(revenueRe) && (q.has(byCustomerRe) || q.customer() != ""))
	}, runRevenueByCustomer},
	{models.IntentRevenueByStore, func(q *query) bool {
		return q.hinted(models.IntentRevenueByStore) ||
			(q.has(salesRe) && (q.has(byStoreRe) || q.store() != ""))
	}, runRevenueByStore},
	{models.IntentRevenueByMonth, func(q *query) bool {
		return q.hinted(models.IntentRevenueByMonth) || (q.has(salesRe) && q.has(byMonthRe))
	}, runRevenueByMonth},
	{models.IntentRevenue, func(q *query) bool {
		return q.hinted(models.IntentRevenue) || ((q.has(revenueRe) || q.has(salesRe)) && !q.has(stateRe))
	}, runRevenue},
	{models.IntentServiceCharge, func(q *query) bool {
		return q.hinted(models.IntentServiceCharge) || q.has(serviceChargeRe)
	}, runServiceCharge},
	{models.IntentTip, func(q *query) bool {
		return q.hinted(models.IntentTip) || q.has(tipRe)
	}, runTip},
	{models.IntentDeliveryCharge, func(q *query) bool {
		return q.hinted(models.IntentDeliveryCharge) || q.has(deliveryFeeRe)
	}, runDeliveryCharge},
	{models.IntentTaxByState, func(q *query) bool {
		return q.hinted(models.IntentTaxByState) || (q.has(taxRe) && q.has(stateRe))
	}, runTaxByState},
	{models.IntentSalesByState, func(q *query) bool {
		return q.hinted(models.IntentSalesByState) || (q.has(salesRe) && q.has(stateRe))
	}, runSalesByState},
	{models.IntentTax, func(q *query) bool {
		return q.hinted(models.IntentTax) || q.has(taxRe)
	}, runTax},
	{models.IntentPending, func(q *query) bool {
		return q.hinted(models.IntentPending) || q.has(pendingRe)
	}, runPending},
	{models.IntentNotDelivered, func(q *query) bool {
		return q.hinted(models.IntentNotDelivered) || q.has(notDeliveredRe)
	}, runNotDelivered},
	{models.IntentDelivered, func(q *query) bool {
		return q.hinted(models.IntentDelivered) || q.has(deliveredRe)
	}, runDelivered},
	{models.IntentStatusCheck, func(q *query) bool {
		return q.hinted(models.IntentStatusCheck) || q.has(statusRe)
	}, runStatusCheck},
	{models.IntentAccepted, func(q *query) bool {
		return q.hinted(models.IntentAccepted) || q.has(acceptedRe)
	}, runAccepted},
	{models.IntentTotalOrders, func(q *query) bool {
		return q.hinted(models.IntentTotalOrders) || q.has(totalOrdersRe)
	}, runTotalOrders},
	{models.IntentAverageOrderValue, func(q *query) bool {
		return q.hinted(models.IntentAverageOrderValue) || q.has(averageRe)
	}, runAverageOrderValue},
	{models.IntentFallback, func(*query) bool { return true }, runFallback},
}

// Classifier answers assistant questions over an in-memory order set.
type Classifier struct {
	now func() time.Time
}

func NewClassifier(now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{now: now}
}

// ResolveRange picks the hint's range, else a date expression found in text, else nil.
func (c *Classifier) ResolveRange(text string, hint *models.IntentHint) *models.DateRange {
	if hint != nil && hint.DateRange != nil {
		r := *hint.DateRange
		return &r
	}
	return utils.ParseDateExpression(text, c.now())
}

// Classify never fails: unmatched or empty questions still get an explanatory Result.
func (c *Classifier) Classify(in Input) Result {
	if in.Hint != nil && in.Hint.Intent == models.IntentUnknown {
		return Result{Intent: models.IntentUnknown, Content: cantHelpMessage}
	}

	q := &query{
		text:  strings.TrimSpace(in.Text),
		lower: strings.ToLower(in.Text),
		hint:  in.Hint,
		rng:   c.ResolveRange(in.Text, in.Hint),
		all:   in.Orders,
	}
	q.orders = filterByRange(in.Orders, q.rng)

	for _, m := range matchers {
		if m.match(q) {
			res := m.run(q)
			res.Intent = m.intent
			res.Range = q.rng
			return res
		}
	}
	// unreachable: the fallback matcher always matches
	return Result{Intent: models.IntentFallback, Content: cantHelpMessage}
}

// MatchIntent reports which intent text (and hint) would be routed to.
func MatchIntent(text string, hint *models.IntentHint) string {
	if hint != nil && hint.Intent == models.IntentUnknown {
		return models.IntentUnknown
	}
	q := &query{text: strings.TrimSpace(text), lower: strings.ToLower(text), hint: hint}
	for _, m := range matchers {
		if m.match(q) {
			return m.intent
		}
	}
	return models.IntentFallback
}

func filterByRange(orders []models.Order, r *models.DateRange) []models.Order {
	if r == nil {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if r.Contains(o.OrderDate) {
			out = append(out, o)
		}
	}
	return out
}
