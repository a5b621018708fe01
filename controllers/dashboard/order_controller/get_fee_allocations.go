package order_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/gin-gonic/gin"
)

// GetFeeAllocations godoc
// @Summary Per-order fee allocations
// @Description Fee rate and fee for every accepted order, sorted by date, paginated
// @Tags Reports
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50, max 500)"
// @Success 200 {object} models.ApiResponse{data=[]models.FeeAllocation}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /api/reports/fees [get]
func GetFeeAllocations(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		log.Printf("[reports.fees] WARN invalid page=%q -> default 1", c.Query("page"))
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		log.Printf("[reports.fees] WARN invalid limit=%q -> default 50", c.Query("limit"))
		limit = 50
	}

	_, orders, err := loadFiltered(c, "reports.fees")
	if err != nil {
		abortWithLoadError(c, err)
		return
	}

	all := services.BuildFeeAllocations(orders)
	total := len(all)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Fee allocations computed", all[start:end], meta))
}
