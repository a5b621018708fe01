package order_controller

import (
	"log"
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportOrdersCSV godoc
// @Summary Download orders as CSV
// @Tags Exports
// @Produce text/csv
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 "CSV file"
// @Failure 400 {object} models.ApiResponse
// @Router /api/exports/orders.csv [get]
func ExportOrdersCSV(c *gin.Context) {
	exportOrders(c, "csv", "text/csv", services.ExportOrdersCSV)
}

// ExportOrdersXLSX godoc
// @Summary Download orders as an Excel workbook
// @Tags Exports
// @Produce octet-stream
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 "XLSX file"
// @Failure 400 {object} models.ApiResponse
// @Router /api/exports/orders.xlsx [get]
func ExportOrdersXLSX(c *gin.Context) {
	exportOrders(c, "xlsx", xlsxContentType, services.ExportOrdersXLSX)
}

func exportOrders(c *gin.Context, ext, contentType string, render func([]models.Order) ([]byte, error)) {
	res, orders, err := loadFiltered(c, "exports.orders")
	if err != nil {
		abortWithLoadError(c, err)
		return
	}

	body, err := render(orders)
	if err != nil {
		log.Printf("[exports.orders] ERROR render %s err=%v", ext, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build export", err))
		return
	}
	r := res.Range
	sendAttachment(c, services.AttachmentName("orders", ext, &r), contentType, body)
	log.Printf("[exports.orders] %s sent rows=%d bytes=%d", ext, len(orders), len(body))
}
