package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// InitiateKhaltiPayment creates a hosted Khalti payment for a pending order
// and returns the redirect URL. The pidx is stored on the order so the later
// lookup can be cross-checked.
func InitiateKhaltiPayment(c *gin.Context) {
	utils.LogInfo("InitiateKhaltiPayment called")

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "order_id is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.BadRequest(c, "Order is already paid", nil)
		return
	}

	client := utils.NewKhaltiClient()
	resp, err := client.Initiate(order.ID, order.TotalAmount, order.Shipping.FullName, order.Shipping.Phone)
	if err != nil {
		var verr *utils.VerificationError
		if errors.As(err, &verr) && verr.Retriable {
			utils.LogError("Khalti unreachable initiating order ID: %d: %v", order.ID, err)
			utils.ServiceUnavailable(c, "Payment provider unavailable, please retry")
			return
		}
		utils.LogError("Khalti initiation failed for order ID: %d: %v", order.ID, err)
		utils.BadRequest(c, "Failed to initiate payment", nil)
		return
	}

	if err := config.DB.Model(&order).UpdateColumn("khalti_pidx", resp.Pidx).Error; err != nil {
		utils.LogError("Failed to store pidx for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}
	utils.LogInfo("Khalti payment initiated for order ID: %d, pidx: %s", order.ID, resp.Pidx)

	utils.Success(c, "Payment initiated", gin.H{
		"pidx":        resp.Pidx,
		"payment_url": resp.PaymentURL,
	})
}

// VerifyKhaltiPayment looks a pidx up with the provider and settles the
// referenced order when the payment is Completed. Any other status leaves
// the order untouched.
func VerifyKhaltiPayment(c *gin.Context) {
	utils.LogInfo("VerifyKhaltiPayment called")

	var req struct {
		Pidx string `json:"pidx" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "pidx is required", err.Error())
		return
	}

	client := utils.NewKhaltiClient()
	lookup, err := client.Lookup(req.Pidx)
	if err != nil {
		var verr *utils.VerificationError
		if errors.As(err, &verr) && verr.Retriable {
			utils.LogError("Khalti unreachable for pidx %s: %v", req.Pidx, err)
			utils.ServiceUnavailable(c, "Payment provider unavailable, please retry")
			return
		}
		utils.LogError("Khalti lookup failed for pidx %s: %v", req.Pidx, err)
		utils.BadRequest(c, "Payment could not be verified", nil)
		return
	}

	if lookup.Status != "Completed" {
		utils.LogInfo("Khalti payment not completed for pidx %s, status: %s", req.Pidx, lookup.Status)
		utils.BadRequest(c, "Payment not completed", gin.H{"status": lookup.Status})
		return
	}

	orderID, err := strconv.ParseUint(lookup.PurchaseOrderID, 10, 32)
	if err != nil || orderID == 0 {
		utils.LogError("Khalti lookup for pidx %s carries no usable order reference: %q", req.Pidx, lookup.PurchaseOrderID)
		utils.BadRequest(c, "Payment could not be matched to an order", nil)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, uint(orderID)).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.Success(c, "Payment already verified", gin.H{"order_id": order.ID})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	if err := utils.SettleOrderPayment(tx, &order, "", utils.ProviderRefs{KhaltiPidx: lookup.Pidx}); err != nil {
		tx.Rollback()
		utils.LogError("Failed to settle Khalti payment for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit Khalti settlement for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}
	utils.LogInfo("Order ID: %d settled via Khalti, pidx: %s", order.ID, lookup.Pidx)

	utils.Success(c, "Payment verified", gin.H{
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
	})
}
