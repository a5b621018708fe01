package models

import "time"

// OrderStatus is the normalized lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusInTransit OrderStatus = "in_transit"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
	StatusRejected  OrderStatus = "rejected"
)

// NotAvailable marks a delivery date the source did not provide.
const NotAvailable = "N/A"

// Order is the canonical order record built from the upstream CSV.
type Order struct {
	ID               string     `json:"id"`
	OrderDate        string     `json:"orderDate"`    // YYYY-MM-DD, local calendar
	DeliveryDate     string     `json:"deliveryDate"` // YYYY-MM-DD or "N/A"
	DeliveryDateTime *time.Time `json:"deliveryDateTime,omitempty"`

	Total            float64 `json:"total"`
	Revenue          float64 `json:"revenue"`
	Tax              float64 `json:"tax"`
	Tip              float64 `json:"tip"`
	ShippingFee      float64 `json:"shippingFee"`
	DeliveryFee      float64 `json:"deliveryFee"`
	ServiceCharge    float64 `json:"serviceCharge"`
	ServiceChargeTax float64 `json:"serviceChargeTax"`
	GiftNoteCharge   float64 `json:"giftNoteCharge"`
	PromoDiscAmt     float64 `json:"promoDiscAmt"`

	Status         OrderStatus `json:"status"`
	DeliveryStatus string      `json:"deliveryStatus"` // free text, e.g. "Delayed", "On Time"

	CustomerName  string `json:"customerName"`
	Establishment string `json:"establishment"` // retailer
	Address       string `json:"address"`
	Phone         string `json:"phone"`

	Items []LineItem `json:"items"`

	StripePaymentID        string `json:"stripePaymentId,omitempty"`
	DoordashDeliveryWindow string `json:"doordashDeliveryWindow,omitempty"`
	DoordashStatus         string `json:"doordashStatus,omitempty"`
	SentToDoordash         bool   `json:"sentToDoordash"`
}

// LineItem is a single product line on an order
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// IsAccepted reports whether the order counts toward revenue metrics.
func (o Order) IsAccepted() bool {
	switch o.Status {
	case StatusPending, StatusCanceled, StatusRejected, "cancelled":
		return false
	}
	return true
}

// OrdersResponse is the envelope of GET /api/orders.
type OrdersResponse struct {
	Success     bool    `json:"success"`
	Data        []Order `json:"data"`
	TotalOrders int     `json:"totalOrders"`
	Message     string  `json:"message"`
	Source      string  `json:"source,omitempty"`
	Skipped     int     `json:"skippedRows,omitempty"`
}

// OrdersErrorResponse is the failure envelope shared by the order and refresh endpoints.
type OrdersErrorResponse struct {
	Success   bool    `json:"success"`
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	APIStatus int     `json:"apiStatus,omitempty"`
	Data      []Order `json:"data"`
}

// OrderFilter narrows a loaded order set. Empty fields do not restrict.
type OrderFilter struct {
	Range          *DateRange `form:"-"`
	Retailer       string     `form:"retailer"`
	Customer       string     `form:"customer"`
	Status         string     `form:"status"`
	DeliveryStatus string     `form:"deliveryStatus"`
}
