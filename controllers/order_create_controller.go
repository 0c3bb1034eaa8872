package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// CheckoutItem is one requested line item. Title and price are snapshotted
// from the catalog at reservation time, not trusted from the client.
type CheckoutItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CheckoutRequest is the order creation payload.
type CheckoutRequest struct {
	Items         []CheckoutItem      `json:"items"`
	Shipping      models.ShippingInfo `json:"shipping"`
	TotalAmount   *float64            `json:"total_amount"`
	PaymentMethod string              `json:"payment_method"`
	Coupon        *struct {
		Code string `json:"code"`
	} `json:"coupon"`
}

// CreateOrder is the checkout orchestrator: it reserves stock, consumes the
// coupon and persists the order as one all-or-nothing transaction. After
// this call either a fully reserved, fully priced order exists or nothing
// changed.
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.BadRequest(c, "Invalid user in context", nil)
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid order data", err.Error())
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentMethodCOD
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start checkout transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// Settings are reloaded on every checkout, never cached
	settings, err := models.GetSettings(tx)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	if settings.MaintenanceMode {
		tx.Rollback()
		utils.ServiceUnavailable(c, "Store is under maintenance")
		return
	}

	if !settings.PaymentMethodEnabled(req.PaymentMethod) {
		tx.Rollback()
		utils.LogError("Disabled payment method requested: %s", req.PaymentMethod)
		utils.BadRequest(c, req.PaymentMethod+" payments are disabled", nil)
		return
	}

	if len(req.Items) == 0 || req.Shipping.FullName == "" || req.Shipping.Address == "" || req.TotalAmount == nil {
		tx.Rollback()
		utils.BadRequest(c, "Invalid order data", nil)
		return
	}

	// Reserve stock for every line item. The first failure aborts the whole
	// transaction, rolling back reservations already made in it.
	var orderItems []models.OrderItem
	var subtotal float64
	for _, item := range req.Items {
		product, err := utils.ReserveStock(tx, item.ProductID, item.Quantity)
		if err != nil {
			tx.Rollback()
			var stockErr *utils.InsufficientStockError
			if errors.As(err, &stockErr) {
				utils.LogError("Checkout aborted, %v (user ID: %d)", stockErr, user.ID)
				utils.BadRequest(c, stockErr.Error(), gin.H{"product_id": stockErr.ProductID})
				return
			}
			utils.LogError("Stock reservation failed: %v", err)
			utils.BadRequest(c, "Invalid order data", nil)
			return
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Image:     firstImage(product),
		})
		subtotal += product.Price * float64(item.Quantity)
	}

	order := models.Order{
		UserID:        &user.ID,
		Items:         orderItems,
		Shipping:      req.Shipping,
		TotalAmount:   *req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   models.OrderStatusPending,
		RefundStatus:  models.RefundStatusNone,
	}

	// Validate and consume the coupon inside the same transaction as the
	// order so concurrent checkouts cannot both redeem the last use.
	if req.Coupon != nil && req.Coupon.Code != "" {
		quote, err := utils.ValidateCoupon(tx, req.Coupon.Code, subtotal)
		if err != nil {
			tx.Rollback()
			utils.LogError("Coupon rejected at checkout: %v", err)
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		if err := utils.ConsumeCoupon(tx, req.Coupon.Code); err != nil {
			tx.Rollback()
			utils.LogError("Coupon consume failed at checkout: %v", err)
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		order.CouponCode = quote.Code
		order.CouponType = quote.Type
		order.CouponValue = quote.Value
		order.CouponDiscount = quote.Discount
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit checkout for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create order, please try again", nil)
		return
	}
	utils.LogInfo("Created order ID: %d for user ID: %d", order.ID, user.ID)

	utils.NotifyOrderPlaced(settings.StoreEmail, order.ID, order.TotalAmount, order.PaymentMethod)

	utils.Created(c, "Order placed successfully", gin.H{
		"order_id": order.ID,
	})
}

func firstImage(product *models.Product) string {
	images := product.ImageList()
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
