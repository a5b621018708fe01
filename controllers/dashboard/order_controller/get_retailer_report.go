package order_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/gin-gonic/gin"
)

// GetRetailerReport godoc
// @Summary Retailer summary report
// @Description GMV, service fees and retailer fees per establishment over accepted orders
// @Tags Reports
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param retailer query string false "Retailer name"
// @Param customer query string false "Customer name (fuzzy)"
// @Success 200 {object} models.ApiResponse{data=models.RetailerReport}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /api/reports/retailers [get]
func GetRetailerReport(c *gin.Context) {
	res, orders, err := loadFiltered(c, "reports.retailers")
	if err != nil {
		abortWithLoadError(c, err)
		return
	}
	r := res.Range
	report := services.BuildRetailerReport(orders, &r)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Retailer report generated", report))
}
