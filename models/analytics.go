package models

// RetailerSummary aggregates accepted orders of one establishment
type RetailerSummary struct {
	Retailer    string  `json:"retailer" csv:"Retailer"`
	GMV         float64 `json:"gmv" csv:"GMV"`                 // summed revenue
	ServiceFee  float64 `json:"serviceFee" csv:"Service Fee"`  // summed service charge
	RetailerFee float64 `json:"retailerFee" csv:"Retailer Fee"` // summed per-order fee allocation
	OrderCount  int     `json:"orderCount" csv:"Orders"`
}

// FeeAllocation is the fee computed for a single order
type FeeAllocation struct {
	OrderID   string  `json:"orderId"`
	OrderDate string  `json:"orderDate"`
	Retailer  string  `json:"retailer"`
	Customer  string  `json:"customer"`
	Revenue   float64 `json:"revenue"`
	Rate      float64 `json:"rate"`
	Fee       float64 `json:"fee"`
}

type RetailerReport struct {
	Range     *DateRange        `json:"dateRange,omitempty"`
	Retailers []RetailerSummary `json:"retailers"`
	Totals    RetailerSummary   `json:"totals"`
}
