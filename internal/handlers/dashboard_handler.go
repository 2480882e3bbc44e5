package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"storefront-service/internal/clients"
	"storefront-service/internal/middleware"
)

// DashboardHandler handles the role-gated dashboard pages and the
// vendor order export. Stats come from the analytics API and degrade
// to empty widgets; the order list behind each dashboard surfaces its
// errors like any order read.
type DashboardHandler struct {
	analytics *clients.AnalyticsClient
	orders    *clients.OrdersClient
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(analytics *clients.AnalyticsClient, orders *clients.OrdersClient) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, orders: orders}
}

// BuyerDashboard handles GET /api/v1/dashboard/buyer
func (h *DashboardHandler) BuyerDashboard(c *gin.Context) {
	session := middleware.GetSession(c)
	stats := h.analytics.BuyerStats(c.Request.Context(), session.Token)
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// VendorDashboard handles GET /api/v1/dashboard/vendor
func (h *DashboardHandler) VendorDashboard(c *gin.Context) {
	session := middleware.GetSession(c)

	stats := h.analytics.VendorStats(c.Request.Context(), session.Token)

	orders, err := h.orders.ListVendorOrders(c.Request.Context(), session.Token, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "orders": orders})
}

// AdminDashboard handles GET /api/v1/dashboard/admin
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	session := middleware.GetSession(c)
	stats := h.analytics.AdminStats(c.Request.Context(), session.Token)
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ExportVendorOrders handles GET /api/v1/dashboard/vendor/orders/export.
// Streams the vendor's orders as an Excel workbook.
func (h *DashboardHandler) ExportVendorOrders(c *gin.Context) {
	session := middleware.GetSession(c)

	orders, err := h.orders.ListVendorOrders(c.Request.Context(), session.Token, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Orders"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	headers := []string{"Order Number", "Status", "Items", "Total Amount", "Currency", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	for i, order := range orders {
		row := i + 2
		orderNumber := order.OrderNumber
		if orderNumber == "" {
			orderNumber = order.ID
		}
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}

		values := []interface{}{
			orderNumber,
			order.Status,
			itemCount,
			order.TotalAmount,
			order.Currency,
			order.CreatedAt.Format(time.RFC3339),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=vendor_orders.xlsx")

	f.Write(c.Writer)
}
