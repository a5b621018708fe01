package services

import (
	"sort"
	"strings"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
	"github.com/shopspring/decimal"
)

// FilterOrders returns the orders matching every non-empty field of f, keeping input order.
func FilterOrders(orders []models.Order, f models.OrderFilter) []models.Order {
	out := make([]models.Order, 0, len(orders))
	status := strings.ToLower(strings.TrimSpace(f.Status))
	deliveryStatus := strings.ToLower(strings.TrimSpace(f.DeliveryStatus))
	retailer := strings.TrimSpace(f.Retailer)
	customer := strings.TrimSpace(f.Customer)

	for _, o := range orders {
		if f.Range != nil && !f.Range.Contains(o.OrderDate) {
			continue
		}
		if retailer != "" && !strings.EqualFold(o.Establishment, retailer) {
			continue
		}
		if customer != "" && !utils.MatchCustomerName(customer, o.CustomerName) {
			continue
		}
		if status != "" && string(o.Status) != status {
			continue
		}
		if deliveryStatus != "" && !strings.Contains(strings.ToLower(o.DeliveryStatus), deliveryStatus) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// AcceptedOrders drops pending, canceled and rejected orders.
func AcceptedOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsAccepted() {
			out = append(out, o)
		}
	}
	return out
}

type retailerTotals struct {
	gmv, serviceFee, retailerFee decimal.Decimal
	orders                       int
}

// BuildRetailerSummaries groups accepted orders by establishment, largest GMV first.
func BuildRetailerSummaries(orders []models.Order) []models.RetailerSummary {
	byRetailer := make(map[string]*retailerTotals)
	for _, o := range orders {
		if !o.IsAccepted() {
			continue
		}
		t, ok := byRetailer[o.Establishment]
		if !ok {
			t = &retailerTotals{}
			byRetailer[o.Establishment] = t
		}
		fee, _ := CalculateOrderFee(o)
		t.gmv = t.gmv.Add(decimal.NewFromFloat(o.Revenue))
		t.serviceFee = t.serviceFee.Add(decimal.NewFromFloat(o.ServiceCharge))
		t.retailerFee = t.retailerFee.Add(decimal.NewFromFloat(fee))
		t.orders++
	}

	summaries := make([]models.RetailerSummary, 0, len(byRetailer))
	for name, t := range byRetailer {
		summaries = append(summaries, models.RetailerSummary{
			Retailer:    name,
			GMV:         t.gmv.Round(2).InexactFloat64(),
			ServiceFee:  t.serviceFee.Round(2).InexactFloat64(),
			RetailerFee: t.retailerFee.Round(2).InexactFloat64(),
			OrderCount:  t.orders,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].GMV != summaries[j].GMV {
			return summaries[i].GMV > summaries[j].GMV
		}
		return summaries[i].Retailer < summaries[j].Retailer
	})
	return summaries
}

// BuildRetailerReport adds a totals row to the per-retailer summaries.
func BuildRetailerReport(orders []models.Order, r *models.DateRange) models.RetailerReport {
	summaries := BuildRetailerSummaries(orders)
	var gmv, serviceFee, retailerFee decimal.Decimal
	totals := models.RetailerSummary{Retailer: "Total"}
	for _, s := range summaries {
		gmv = gmv.Add(decimal.NewFromFloat(s.GMV))
		serviceFee = serviceFee.Add(decimal.NewFromFloat(s.ServiceFee))
		retailerFee = retailerFee.Add(decimal.NewFromFloat(s.RetailerFee))
		totals.OrderCount += s.OrderCount
	}
	totals.GMV = gmv.Round(2).InexactFloat64()
	totals.ServiceFee = serviceFee.Round(2).InexactFloat64()
	totals.RetailerFee = retailerFee.Round(2).InexactFloat64()

	return models.RetailerReport{Range: r, Retailers: summaries, Totals: totals}
}

// BuildFeeAllocations lists the fee of every accepted order, oldest first.
func BuildFeeAllocations(orders []models.Order) []models.FeeAllocation {
	out := make([]models.FeeAllocation, 0, len(orders))
	for _, o := range orders {
		if !o.IsAccepted() {
			continue
		}
		fee, rate := CalculateOrderFee(o)
		out = append(out, models.FeeAllocation{
			OrderID:   o.ID,
			OrderDate: o.OrderDate,
			Retailer:  o.Establishment,
			Customer:  o.CustomerName,
			Revenue:   o.Revenue,
			Rate:      rate,
			Fee:       fee,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderDate != out[j].OrderDate {
			return out[i].OrderDate < out[j].OrderDate
		}
		return out[i].OrderID < out[j].OrderID
	})
	return out
}
