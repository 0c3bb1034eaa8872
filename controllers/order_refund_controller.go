package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// Reasons a customer may cite when requesting a refund. change_of_mind is
// deliberately absent: it never qualifies for a refund request.
var refundRequestReasons = map[string]bool{
	models.RefundReasonSizeIssue:   true,
	models.RefundReasonDamagedItem: true,
	models.RefundReasonWrongItem:   true,
}

// RefundRequestWindow is how long after the last order update a customer may
// still request a refund.
const RefundRequestWindow = 7 * 24 * time.Hour

// RequestRefund records a customer's refund request on their own order. The
// request does not move any money; it only flags the order for operator
// review.
func RequestRefund(c *gin.Context) {
	utils.LogInfo("RequestRefund called")

	order, ok := loadUserOrder(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Refund reason is required", err.Error())
		return
	}

	if order.RefundRequested {
		utils.Conflict(c, utils.ErrRefundAlreadyRequested.Error(), nil)
		return
	}

	if !refundRequestReasons[req.Reason] {
		utils.BadRequest(c, utils.ErrRefundInvalidReason.Error(), gin.H{
			"allowed_reasons": []string{
				models.RefundReasonSizeIssue,
				models.RefundReasonDamagedItem,
				models.RefundReasonWrongItem,
			},
		})
		return
	}

	// The window runs from the last order update, so a recent delivery
	// restarts the clock.
	if time.Since(order.UpdatedAt) > RefundRequestWindow {
		utils.BadRequest(c, utils.ErrRefundWindowExpired.Error(), nil)
		return
	}

	now := time.Now()
	order.RefundRequested = true
	order.RefundRequestedAt = &now
	order.RefundReason = req.Reason
	order.RefundStatus = models.RefundStatusRequested

	if err := config.DB.Save(order).Error; err != nil {
		utils.LogError("Failed to save refund request for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to submit refund request", nil)
		return
	}
	utils.LogInfo("Refund requested for order ID: %d, reason: %s", order.ID, req.Reason)

	if settings, err := models.GetSettings(config.DB); err == nil {
		utils.NotifyRefundRequested(settings.StoreEmail, order.ID, req.Reason)
	}

	utils.Success(c, "Refund request submitted", gin.H{
		"order_id":      order.ID,
		"refund_status": order.RefundStatus,
	})
}
