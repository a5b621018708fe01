package services

import (
	"strings"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/shopspring/decimal"
)

const (
	preferredCustomerRate = 0.08
	partnerRetailerRate   = 0.10
	contractCustomerRate  = 0.12
	premiumRetailerRate   = 0.25
	defaultFeeRate        = 0.20
)

// Customer names are compared lowercased; retailer names are compared as-is.
var (
	preferredCustomers = []string{"vistajet"}
	partnerRetailers   = []string{"Freshco", "Urban Greens", "Bluebird Bakery", "Harbor Deli"}
	contractCustomers  = []string{"netjets", "wheels up"}
	premiumRetailer    = "Maison Laurent"
)

// CalculateFeeRate resolves the fee percentage for a retailer/customer pair. Rules are
// evaluated in order and the first match wins.
func CalculateFeeRate(retailer, customer string) float64 {
	c := strings.ToLower(strings.TrimSpace(customer))

	switch {
	case containsString(preferredCustomers, c):
		return preferredCustomerRate
	case containsString(partnerRetailers, retailer):
		return partnerRetailerRate
	case containsString(contractCustomers, c):
		return contractCustomerRate
	case retailer == premiumRetailer:
		return premiumRetailerRate
	default:
		return defaultFeeRate
	}
}

// CalculateOrderFee returns revenue × rate rounded to cents. Zero revenue skips the lookup.
func CalculateOrderFee(order models.Order) (fee float64, rate float64) {
	if order.Revenue == 0 {
		return 0, 0
	}
	rate = CalculateFeeRate(order.Establishment, order.CustomerName)
	fee = decimal.NewFromFloat(order.Revenue).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		InexactFloat64()
	return fee, rate
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
