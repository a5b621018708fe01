package dashboard_routes

import (
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/controllers/dashboard/order_controller"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", order_controller.GetOrders)

	reports := rg.Group("/reports")
	reports.GET("/retailers", order_controller.GetRetailerReport)
	reports.GET("/fees", order_controller.GetFeeAllocations)

	exports := rg.Group("/exports")
	exports.GET("/orders.csv", order_controller.ExportOrdersCSV)
	exports.GET("/orders.xlsx", order_controller.ExportOrdersXLSX)
	exports.GET("/retailers.csv", order_controller.ExportRetailersCSV)
	exports.GET("/retailers.xlsx", order_controller.ExportRetailersXLSX)
	exports.GET("/retailers.pdf", order_controller.ExportRetailersPDF)
}
