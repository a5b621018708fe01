package order_controller

import (
	"log"
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/gin-gonic/gin"
)

// ExportRetailersCSV godoc
// @Summary Download the retailer report as CSV
// @Tags Exports
// @Produce text/csv
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 "CSV file"
// @Router /api/exports/retailers.csv [get]
func ExportRetailersCSV(c *gin.Context) {
	exportRetailers(c, "csv", "text/csv", services.ExportRetailersCSV)
}

// ExportRetailersXLSX godoc
// @Summary Download the retailer report as an Excel workbook
// @Tags Exports
// @Produce octet-stream
// @Success 200 "XLSX file"
// @Router /api/exports/retailers.xlsx [get]
func ExportRetailersXLSX(c *gin.Context) {
	exportRetailers(c, "xlsx", xlsxContentType, services.ExportRetailersXLSX)
}

// ExportRetailersPDF godoc
// @Summary Download the retailer report as PDF
// @Tags Exports
// @Produce application/pdf
// @Success 200 "PDF file"
// @Router /api/exports/retailers.pdf [get]
func ExportRetailersPDF(c *gin.Context) {
	exportRetailers(c, "pdf", "application/pdf", services.ExportRetailersPDF)
}

func exportRetailers(c *gin.Context, ext, contentType string, render func(models.RetailerReport) ([]byte, error)) {
	res, orders, err := loadFiltered(c, "exports.retailers")
	if err != nil {
		abortWithLoadError(c, err)
		return
	}

	r := res.Range
	report := services.BuildRetailerReport(orders, &r)
	body, err := render(report)
	if err != nil {
		log.Printf("[exports.retailers] ERROR render %s err=%v", ext, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build export", err))
		return
	}
	sendAttachment(c, services.AttachmentName("retailers", ext, &r), contentType, body)
	log.Printf("[exports.retailers] %s sent retailers=%d bytes=%d", ext, len(report.Retailers), len(body))
}
