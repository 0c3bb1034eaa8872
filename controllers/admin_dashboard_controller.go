package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

const lowStockThreshold = 5

// AdminDashboardStats aggregates the numbers the console's landing page
// shows: order counts, paid revenue, refund backlog and low-stock products.
func AdminDashboardStats(c *gin.Context) {
	db := config.DB

	var totalOrders, pendingOrders, refundRequests int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch stats", nil)
		return
	}
	if err := db.Model(&models.Order{}).
		Where("order_status = ?", models.OrderStatusPending).
		Count(&pendingOrders).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch stats", nil)
		return
	}
	if err := db.Model(&models.Order{}).
		Where("refund_status = ?", models.RefundStatusRequested).
		Count(&refundRequests).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch stats", nil)
		return
	}

	var totalRevenue float64
	if err := db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch stats", nil)
		return
	}

	var lowStock []models.Product
	if err := db.Where("is_active = ? AND stock <= ?", true, lowStockThreshold).
		Order("stock ASC").
		Find(&lowStock).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch stats", nil)
		return
	}

	lowStockItems := make([]gin.H, 0, len(lowStock))
	for _, p := range lowStock {
		lowStockItems = append(lowStockItems, gin.H{
			"id":    p.ID,
			"title": p.Title,
			"stock": p.Stock,
		})
	}

	utils.Success(c, "Stats retrieved successfully", gin.H{
		"total_orders":    totalOrders,
		"pending_orders":  pendingOrders,
		"refund_requests": refundRequests,
		"total_revenue":   totalRevenue,
		"low_stock":       lowStockItems,
	})
}

// AdminRecentOrders returns the five most recent orders for the dashboard.
func AdminRecentOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Order("created_at DESC").Limit(5).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch recent orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch recent orders", nil)
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, orderSummary(o))
	}

	utils.Success(c, "Recent orders retrieved successfully", gin.H{"orders": summaries})
}
