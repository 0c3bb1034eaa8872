package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// VerifyEsewaPayment confirms an eSewa payment server-to-server and settles
// the order. The client's claim of success is never trusted: the provider is
// asked directly, and only its answer moves money. Repeated verification of
// an already-settled order is a success no-op.
func VerifyEsewaPayment(c *gin.Context) {
	utils.LogInfo("VerifyEsewaPayment called")

	var req struct {
		OrderID uint   `json:"order_id" binding:"required"`
		Amount  string `json:"amount" binding:"required"`
		RefID   string `json:"ref_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "order_id, amount and ref_id are required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.Success(c, "Payment already verified", gin.H{"order_id": order.ID})
		return
	}

	client := utils.NewEsewaClient()
	if err := client.VerifyTransaction(strconv.FormatUint(uint64(order.ID), 10), req.Amount, req.RefID); err != nil {
		var verr *utils.VerificationError
		if errors.As(err, &verr) && verr.Retriable {
			utils.LogError("eSewa unreachable for order ID: %d: %v", order.ID, err)
			utils.ServiceUnavailable(c, "Payment provider unavailable, please retry")
			return
		}
		utils.LogError("eSewa rejected payment for order ID: %d: %v", order.ID, err)
		utils.BadRequest(c, "Payment could not be verified", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	if err := utils.SettleOrderPayment(tx, &order, "", utils.ProviderRefs{EsewaRefID: req.RefID}); err != nil {
		tx.Rollback()
		utils.LogError("Failed to settle eSewa payment for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit eSewa settlement for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}
	utils.LogInfo("Order ID: %d settled via eSewa, ref: %s", order.ID, req.RefID)

	utils.Success(c, "Payment verified", gin.H{
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
	})
}
