package services

import "github.com/Modeva-Ecommerce/ops-dashboard-backend/models"

// SampleOrders returns a fixed illustrative data set dated on date. It is only substituted for
// an empty upstream payload when ALLOW_SAMPLE_FALLBACK is enabled, and by tests.
func SampleOrders(date string) []models.Order {
	return []models.Order{
		{
			ID: "SAMPLE-1001", OrderDate: date, DeliveryDate: date,
			Total: 128.40, Revenue: 110.00, Tax: 9.90, Tip: 8.50, ServiceCharge: 5.50,
			Status: models.StatusDelivered, DeliveryStatus: "On Time",
			CustomerName: "Sample Customer A", Establishment: "Freshco",
			Address: "100 Main St, Austin, TX 78701",
			Items:   []models.LineItem{{Name: "Catering Tray", Quantity: 2, Price: 55.00}},
		},
		{
			ID: "SAMPLE-1002", OrderDate: date, DeliveryDate: models.NotAvailable,
			Total: 64.25, Revenue: 55.00, Tax: 4.95, Tip: 4.30, ServiceCharge: 2.75,
			Status: models.StatusPending, DeliveryStatus: "Scheduled",
			CustomerName: "Sample Customer B", Establishment: "Harbor Deli",
			Address: "22 Pier Rd, Miami, FL 33101",
			Items:   []models.LineItem{{Name: "Sandwich Box", Quantity: 5, Price: 11.00}},
		},
		{
			ID: "SAMPLE-1003", OrderDate: date, DeliveryDate: date,
			Total: 240.00, Revenue: 210.00, Tax: 18.90, Tip: 11.10, ServiceCharge: 10.50, DeliveryFee: 12.00,
			Status: models.StatusInTransit, DeliveryStatus: "Delayed",
			CustomerName: "Sample Customer C", Establishment: "Maison Laurent",
			Address: "9 Terminal Way, Teterboro, NJ 07608",
			Items:   []models.LineItem{{Name: "Crew Meal", Quantity: 6, Price: 35.00}},
		},
	}
}
