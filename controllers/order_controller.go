package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

func orderSummary(o models.Order) gin.H {
	return gin.H{
		"id":             o.ID,
		"total_amount":   o.TotalAmount,
		"payment_method": o.PaymentMethod,
		"payment_status": o.PaymentStatus,
		"order_status":   o.OrderStatus,
		"refund_status":  o.RefundStatus,
		"created_at":     o.CreatedAt,
	}
}

func orderDetail(o models.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, gin.H{
			"product_id": item.ProductID,
			"title":      item.Title,
			"price":      item.Price,
			"quantity":   item.Quantity,
			"image":      item.Image,
		})
	}

	detail := gin.H{
		"id":             o.ID,
		"items":          items,
		"shipping":       o.Shipping,
		"total_amount":   o.TotalAmount,
		"payment_method": o.PaymentMethod,
		"payment_status": o.PaymentStatus,
		"order_status":   o.OrderStatus,
		"created_at":     o.CreatedAt,
		"updated_at":     o.UpdatedAt,
	}

	if o.CouponCode != "" {
		detail["coupon"] = gin.H{
			"code":     o.CouponCode,
			"type":     o.CouponType,
			"value":    o.CouponValue,
			"discount": o.CouponDiscount,
		}
	}

	if o.RefundStatus != models.RefundStatusNone {
		detail["refund"] = gin.H{
			"status":       o.RefundStatus,
			"reason":       o.RefundReason,
			"method":       o.RefundMethod,
			"amount":       o.RefundAmount,
			"requested_at": o.RefundRequestedAt,
			"refunded_at":  o.RefundedAt,
		}
	}

	return detail
}

// GetUserOrders lists the authenticated customer's orders, newest first.
func GetUserOrders(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var orders []models.Order
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, orderSummary(o))
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": summaries})
}

// loadUserOrder fetches an order and enforces ownership. A missing order and
// someone else's order are both reported as not found.
func loadUserOrder(c *gin.Context) (*models.Order, bool) {
	user := c.MustGet("user").(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return nil, false
	}

	var order models.Order
	if err := config.DB.Preload("Items").
		Where("id = ? AND user_id = ?", uint(id), user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return nil, false
	}
	return &order, true
}

// GetOrderDetails returns one of the customer's own orders.
func GetOrderDetails(c *gin.Context) {
	order, ok := loadUserOrder(c)
	if !ok {
		return
	}
	utils.Success(c, "Order retrieved successfully", gin.H{"order": orderDetail(*order)})
}
