package order_controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 2 * time.Minute

// OrderSource is implemented by services.OrderService.
type OrderSource interface {
	LoadOrders(ctx context.Context, r models.DateRange) (*services.LoadResult, error)
	Now() time.Time
}

var orderSource OrderSource

func Init(src OrderSource) {
	orderSource = src
}

// rangeFromQuery reads startDate/endDate. Both absent means month to date; one absent is an
// invalid range.
func rangeFromQuery(c *gin.Context) (models.DateRange, error) {
	start := strings.TrimSpace(c.Query("startDate"))
	end := strings.TrimSpace(c.Query("endDate"))
	if start == "" && end == "" {
		return utils.MonthToDate(orderSource.Now()), nil
	}
	if start == "" || end == "" {
		return models.DateRange{}, fmt.Errorf("%w: startDate and endDate are both required", models.ErrInvalidDateRange)
	}
	return models.DateRange{StartDate: start, EndDate: end}, nil
}

// loadFiltered loads the requested range and applies the optional query filters.
func loadFiltered(c *gin.Context, op string) (*services.LoadResult, []models.Order, error) {
	r, err := rangeFromQuery(c)
	if err != nil {
		return nil, nil, err
	}

	var filter models.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", models.ErrInvalidDateRange, err)
	}
	filter.Range = &r

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	res, err := orderSource.LoadOrders(ctx, r)
	if err != nil {
		log.Printf("[%s] ERROR load range=%s err=%v", op, r, err)
		return nil, nil, err
	}
	orders := services.FilterOrders(res.Orders, filter)
	log.Printf("[%s] range=%s source=%s loaded=%d filtered=%d", op, r, res.Source, len(res.Orders), len(orders))
	return res, orders, nil
}

// statusFor maps load errors to HTTP status codes.
func statusFor(err error) int {
	var upErr *models.UpstreamError
	switch {
	case errors.Is(err, models.ErrInvalidDateRange), errors.Is(err, models.ErrFutureDate):
		return http.StatusBadRequest
	case errors.As(err, &upErr), errors.Is(err, models.ErrUpstreamNotSet):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid date range"
	case http.StatusBadGateway:
		return "Failed to fetch orders from the order API"
	case http.StatusGatewayTimeout:
		return "Order API timed out"
	default:
		return "Failed to load orders"
	}
}

func abortWithLoadError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, models.ErrorResponse(c, messageFor(status), err))
}

func sendAttachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(body)))
	c.Data(http.StatusOK, contentType, body)
}
