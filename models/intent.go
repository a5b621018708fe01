package models

// Intent names shared by the language-model parser and the local classifier.
const (
	IntentDelayedByCustomer = "delayed_by_customer"
	IntentDelayed           = "delayed"
	IntentRevenueByCustomer = "revenue_by_customer"
	IntentRevenueByStore    = "revenue_by_store"
	IntentRevenueByMonth    = "revenue_by_month"
	IntentRevenue           = "revenue"
	IntentServiceCharge     = "service_charge"
	IntentTip               = "tip"
	IntentDeliveryCharge    = "delivery_charge"
	IntentTaxByState        = "tax_by_state"
	IntentSalesByState      = "sales_by_state"
	IntentTax               = "tax"
	IntentPending           = "pending"
	IntentNotDelivered      = "not_delivered"
	IntentDelivered         = "delivered"
	IntentStatusCheck       = "status_check"
	IntentAccepted          = "accepted"
	IntentTotalOrders       = "total_orders"
	IntentAverageOrderValue = "average_order_value"
	IntentFallback          = "fallback"
	IntentUnknown           = "unknown"
)

// KnownIntents lists every intent a hint may carry, in classifier priority order.
var KnownIntents = []string{
	IntentDelayedByCustomer, IntentDelayed, IntentRevenueByCustomer, IntentRevenueByStore,
	IntentRevenueByMonth, IntentRevenue, IntentServiceCharge, IntentTip, IntentDeliveryCharge,
	IntentTaxByState, IntentSalesByState, IntentTax, IntentPending, IntentNotDelivered,
	IntentDelivered, IntentStatusCheck, IntentAccepted, IntentTotalOrders,
	IntentAverageOrderValue, IntentUnknown,
}
