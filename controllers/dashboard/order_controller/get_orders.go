package order_controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/gin-gonic/gin"
)

// GetOrders godoc
// @Summary Fetch normalized orders
// @Description Loads orders for the range from the order API (or cache) and applies optional filters
// @Tags Orders
// @Produce json
// @Param startDate query string false "YYYY-MM-DD, defaults to the first of the month"
// @Param endDate query string false "YYYY-MM-DD, defaults to today"
// @Param retailer query string false "Retailer name"
// @Param customer query string false "Customer name (fuzzy)"
// @Param status query string false "Order status"
// @Param deliveryStatus query string false "Delivery status substring"
// @Success 200 {object} models.OrdersResponse
// @Failure 400 {object} models.OrdersErrorResponse "Invalid or future date range"
// @Failure 502 {object} models.OrdersErrorResponse "Order API failure"
// @Router /api/orders [get]
func GetOrders(c *gin.Context) {
	res, orders, err := loadFiltered(c, "orders.list")
	if err != nil {
		status := statusFor(err)
		resp := models.OrdersErrorResponse{
			Success: false,
			Error:   err.Error(),
			Message: messageFor(status),
			Data:    []models.Order{},
		}
		var upErr *models.UpstreamError
		if errors.As(err, &upErr) {
			resp.APIStatus = upErr.Status
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.OrdersResponse{
		Success:     true,
		Data:        orders,
		TotalOrders: len(orders),
		Message:     fmt.Sprintf("Fetched %d orders from %s to %s", len(orders), res.Range.StartDate, res.Range.EndDate),
		Source:      res.Source,
		Skipped:     res.Skipped,
	})
}
