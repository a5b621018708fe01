package services

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

// Orders whose id starts with this prefix are corporate gifts and never show a delivery date.
const corporateGiftPrefix = "CG-"

const (
	defaultCustomerName  = "Unknown Customer"
	defaultEstablishment = "Unknown Retailer"
	syntheticItemName    = "Order Items"
)

type fieldSetter func(n *OrderNormalizer, o *models.Order, value string)

// headerFields maps the known upstream columns (lowercased) to their transforms.
var headerFields = map[string]fieldSetter{
	"ordernumber":            func(_ *OrderNormalizer, o *models.Order, v string) { o.ID = v },
	"date":                   func(n *OrderNormalizer, o *models.Order, v string) { n.setOrderDate(o, v) },
	"deliverydatetime":       func(n *OrderNormalizer, o *models.Order, v string) { n.setDeliveryDateTime(o, v) },
	"customername":           func(_ *OrderNormalizer, o *models.Order, v string) { o.CustomerName = v },
	"retailername":           func(_ *OrderNormalizer, o *models.Order, v string) { o.Establishment = v },
	"address":                func(_ *OrderNormalizer, o *models.Order, v string) { o.Address = v },
	"phone":                  func(_ *OrderNormalizer, o *models.Order, v string) { o.Phone = v },
	"status":                 func(_ *OrderNormalizer, o *models.Order, v string) { o.Status = InferStatus(v) },
	"deliverystatus":         func(_ *OrderNormalizer, o *models.Order, v string) { o.DeliveryStatus = v },
	"total":                  func(_ *OrderNormalizer, o *models.Order, v string) { o.Total = parseMoney(v) },
	"revenue":                func(_ *OrderNormalizer, o *models.Order, v string) { o.Revenue = parseMoney(v) },
	"tax":                    func(_ *OrderNormalizer, o *models.Order, v string) { o.Tax = parseMoney(v) },
	"tip":                    func(_ *OrderNormalizer, o *models.Order, v string) { o.Tip = parseMoney(v) },
	"shippingfee":            func(_ *OrderNormalizer, o *models.Order, v string) { o.ShippingFee = parseMoney(v) },
	"deliveryfee":            func(_ *OrderNormalizer, o *models.Order, v string) { o.DeliveryFee = parseMoney(v) },
	"servicecharge":          func(_ *OrderNormalizer, o *models.Order, v string) { o.ServiceCharge = parseMoney(v) },
	"servicechargetax":       func(_ *OrderNormalizer, o *models.Order, v string) { o.ServiceChargeTax = parseMoney(v) },
	"giftnotecharge":         func(_ *OrderNormalizer, o *models.Order, v string) { o.GiftNoteCharge = parseMoney(v) },
	"promodiscamt":           func(_ *OrderNormalizer, o *models.Order, v string) { o.PromoDiscAmt = parseMoney(v) },
	"items":                  func(_ *OrderNormalizer, o *models.Order, v string) { o.Items = parseLineItems(v) },
	"stripepaymentid":        func(_ *OrderNormalizer, o *models.Order, v string) { o.StripePaymentID = v },
	"doordashdeliverywindow": func(_ *OrderNormalizer, o *models.Order, v string) { o.DoordashDeliveryWindow = v },
	"doordashstatus":         func(_ *OrderNormalizer, o *models.Order, v string) { o.DoordashStatus = v },
	"senttodoordash":         func(_ *OrderNormalizer, o *models.Order, v string) { o.SentToDoordash = parseFlag(v) },
}

// OrderNormalizer converts upstream CSV text into canonical orders.
type OrderNormalizer struct {
	loc   *time.Location
	newID func() string
}

func NewOrderNormalizer(loc *time.Location) *OrderNormalizer {
	if loc == nil {
		loc = time.Local
	}
	return &OrderNormalizer{
		loc: loc,
		newID: func() string {
			return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
		},
	}
}

// NormalizeResult reports the orders built from a CSV payload.
type NormalizeResult struct {
	Orders  []models.Order
	Rows    int // data lines seen
	Skipped int // lines with fewer values than headers
}

// Normalize parses csvText (header line + data lines). fallbackDate (YYYY-MM-DD) is used when
// an order's own date cannot be parsed. Fewer than two non-empty lines is ErrInsufficientData.
func (n *OrderNormalizer) Normalize(csvText, fallbackDate string) (*NormalizeResult, error) {
	lines := utils.SplitCSVLines(csvText)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: %d non-empty line(s)", models.ErrInsufficientData, len(lines))
	}

	headers := utils.ParseCSVLine(lines[0])
	setters := make([]fieldSetter, len(headers))
	known := 0
	for i, h := range headers {
		if set, ok := headerFields[strings.ToLower(strings.TrimSpace(h))]; ok {
			setters[i] = set
			known++
		}
	}
	log.Printf("[orders.normalize] headers=%d recognized=%d lines=%d", len(headers), known, len(lines)-1)

	result := &NormalizeResult{Orders: make([]models.Order, 0, len(lines)-1)}
	for lineNo, line := range lines[1:] {
		result.Rows++
		values := utils.ParseCSVLine(line)
		if len(values) < len(headers) {
			result.Skipped++
			log.Printf("[orders.normalize] WARN skip line=%d values=%d headers=%d", lineNo+2, len(values), len(headers))
			continue
		}

		order := models.Order{
			OrderDate:    fallbackDate,
			DeliveryDate: models.NotAvailable,
			Status:       models.StatusPending,
		}
		for i, set := range setters {
			if set != nil {
				set(n, &order, values[i])
			}
		}
		n.finalize(&order)
		result.Orders = append(result.Orders, order)
	}

	if result.Skipped > 0 {
		log.Printf("[orders.normalize] WARN skipped=%d of rows=%d", result.Skipped, result.Rows)
	}
	return result, nil
}

func (n *OrderNormalizer) finalize(o *models.Order) {
	if strings.TrimSpace(o.ID) == "" {
		o.ID = n.newID()
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		o.CustomerName = defaultCustomerName
	}
	if strings.TrimSpace(o.Establishment) == "" {
		o.Establishment = defaultEstablishment
	}
	if len(o.Items) == 0 {
		o.Items = []models.LineItem{{Name: syntheticItemName, Quantity: 1, Price: o.Total}}
	}
	if strings.HasPrefix(strings.ToUpper(o.ID), corporateGiftPrefix) {
		o.DeliveryDate = models.NotAvailable
	}
}

// setOrderDate tries M/D/YYYY first, then a generic parse, and otherwise keeps the fallback.
func (n *OrderNormalizer) setOrderDate(o *models.Order, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	if d, ok := parseSlashDate(v, n.loc); ok {
		o.OrderDate = d.Format(models.DateLayout)
		return
	}
	if t, err := dateparse.ParseIn(v, n.loc); err == nil {
		o.OrderDate = t.In(n.loc).Format(models.DateLayout)
	}
}

// setDeliveryDateTime keeps the instant and derives the displayed date from its local calendar
// fields, so a late-evening delivery does not show up on the next UTC day.
func (n *OrderNormalizer) setDeliveryDateTime(o *models.Order, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		o.DeliveryDate = models.NotAvailable
		return
	}
	t, err := dateparse.ParseIn(v, n.loc)
	if err != nil {
		o.DeliveryDate = models.NotAvailable
		return
	}
	o.DeliveryDateTime = &t
	o.DeliveryDate = t.In(n.loc).Format(models.DateLayout)
}

func parseSlashDate(v string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.Fields(v)[0], "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, errM := strconv.Atoi(parts[0])
	day, errD := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errM != nil || errD != nil || errY != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}

// InferStatus maps free-text upstream status to the enum by substring; first match wins.
func InferStatus(raw string) models.OrderStatus {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "delivered"):
		return models.StatusDelivered
	case strings.Contains(s, "transit"):
		return models.StatusInTransit
	case strings.Contains(s, "accepted"):
		return models.StatusAccepted
	case strings.Contains(s, "canceled"), strings.Contains(s, "cancelled"):
		return models.StatusCanceled
	case strings.Contains(s, "pending"):
		return models.StatusPending
	case strings.Contains(s, "rejected"):
		return models.StatusRejected
	default:
		return models.StatusPending
	}
}

func parseMoney(v string) float64 {
	v = strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "y", "1", "sent":
		return true
	}
	return false
}

// "2 x Croissant @ 3.50; Latte @ 4.25; 3 x Muffin"
var lineItemRe = regexp.MustCompile(`^(?:(\d+)\s*[xX]\s+)?(.+?)(?:\s*@\s*\$?([\d.]+))?$`)

func parseLineItems(v string) []models.LineItem {
	var items []models.LineItem
	for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == '|' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := lineItemRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		qty := 1
		if m[1] != "" {
			qty, _ = strconv.Atoi(m[1])
		}
		price, _ := strconv.ParseFloat(m[3], 64)
		items = append(items, models.LineItem{Name: strings.TrimSpace(m[2]), Quantity: qty, Price: price})
	}
	return items
}
