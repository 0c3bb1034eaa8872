package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// AdminListOrders lists orders newest first with optional status and refund
// filters.
func AdminListOrders(c *gin.Context) {
	query := config.DB.Model(&models.Order{}).Preload("Items")

	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}
	if c.Query("refund_requested") == "true" {
		query = query.Where("refund_requested = ?", true)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{
		"orders": orders,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// AdminGetOrder returns one order with its items.
func AdminGetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, uint(id)).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": orderDetail(order)})
}

// AdminUpdateOrderStatus moves an order through the status machine. A
// cancelled order is terminal and rejects every transition; cancelling a
// pending order restores its reserved stock.
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Status is required", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	var order models.Order
	if err := tx.Preload("Items").First(&order, uint(id)).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	wasPending := order.OrderStatus == models.OrderStatusPending

	if err := utils.ApplyOrderStatus(&order, req.Status); err != nil {
		tx.Rollback()
		switch {
		case errors.Is(err, utils.ErrInvalidStatus):
			utils.BadRequest(c, err.Error(), gin.H{"allowed": utils.AllowedOrderStatuses()})
		case errors.Is(err, utils.ErrOrderLocked):
			utils.Conflict(c, err.Error(), nil)
		default:
			utils.InternalServerError(c, "Failed to update order", nil)
		}
		return
	}

	// Cancelling an unfulfilled order puts its units back on the shelf.
	if req.Status == models.OrderStatusCancelled && wasPending {
		for _, item := range order.Items {
			if err := utils.RestoreStock(tx, item.ProductID, item.Quantity); err != nil {
				tx.Rollback()
				utils.LogError("Failed to restore stock for product ID: %d: %v", item.ProductID, err)
				utils.InternalServerError(c, "Failed to update order", nil)
				return
			}
		}
	}

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to save order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit status update for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}
	utils.LogInfo("Order ID: %d moved to status: %s", order.ID, order.OrderStatus)

	utils.Success(c, "Order status updated", gin.H{
		"order_id":       order.ID,
		"order_status":   order.OrderStatus,
		"payment_status": order.PaymentStatus,
	})
}
