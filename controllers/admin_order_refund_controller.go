package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// walletRefundEligible reports whether a refund reason qualifies for wallet
// issuance. change_of_mind and size_issue are carved out: a customer may
// request a refund for a size issue, but the operator resolves it by
// exchange, not by crediting the wallet.
func walletRefundEligible(reason string) bool {
	return reason != models.RefundReasonChangeOfMind && reason != models.RefundReasonSizeIssue
}

// AdminIssueWalletRefund records the refund on the store wallet and marks
// the order refunded. The guards run in a fixed order inside one transaction
// so a double-click or a replay cannot credit twice: the order must not
// already be refunded, must hold a request still in the requested state
// (a rejected request does not qualify), the reason must qualify, and the
// store ledger must not already hold a refund entry for this order.
func AdminIssueWalletRefund(c *gin.Context) {
	utils.LogInfo("AdminIssueWalletRefund called")

	admin := c.MustGet("admin").(models.Admin)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to issue refund", nil)
		return
	}

	var order models.Order
	if err := tx.First(&order, uint(id)).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if order.RefundStatus == models.RefundStatusRefunded {
		tx.Rollback()
		utils.Conflict(c, utils.ErrAlreadyRefunded.Error(), nil)
		return
	}

	if !order.RefundRequested || order.RefundStatus != models.RefundStatusRequested {
		tx.Rollback()
		utils.BadRequest(c, utils.ErrRefundNotRequested.Error(), nil)
		return
	}

	if !walletRefundEligible(order.RefundReason) {
		tx.Rollback()
		utils.BadRequest(c, utils.ErrRefundNotEligible.Error(), gin.H{"reason": order.RefundReason})
		return
	}

	wallet, err := utils.GetOrCreateStoreWallet(tx)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load store wallet: %v", err)
		utils.InternalServerError(c, "Failed to issue refund", nil)
		return
	}

	exists, err := utils.HasTransactionForOrder(tx, wallet.ID, order.ID, models.TransactionTypeRefund)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to check refund history for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to issue refund", nil)
		return
	}
	if exists {
		tx.Rollback()
		utils.Conflict(c, utils.ErrDuplicateRefund.Error(), nil)
		return
	}

	if err := utils.AddWalletTransaction(tx, wallet, utils.WalletTransactionParams{
		Type:           models.TransactionTypeRefund,
		Amount:         order.TotalAmount,
		Note:           fmt.Sprintf("Refund for order %d (%s)", order.ID, order.RefundReason),
		RelatedOrderID: &order.ID,
		Source:         models.TransactionSourceAdmin,
	}); err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit wallet for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to issue refund", nil)
		return
	}

	now := time.Now()
	order.RefundStatus = models.RefundStatusRefunded
	order.RefundMethod = models.RefundMethodWallet
	order.RefundAmount = order.TotalAmount
	order.RefundedAt = &now
	order.RefundedBy = &admin.ID

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to mark order ID: %d refunded: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to issue refund", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit refund for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to issue refund", nil)
		return
	}
	utils.LogInfo("Wallet refund of %.2f issued for order ID: %d by admin ID: %d", order.RefundAmount, order.ID, admin.ID)

	utils.Success(c, "Refund issued to wallet", gin.H{
		"order_id":       order.ID,
		"refund_status":  order.RefundStatus,
		"refund_amount":  order.RefundAmount,
		"wallet_balance": wallet.Balance,
	})
}

// AdminRejectRefund declines a pending refund request without moving money.
func AdminRejectRefund(c *gin.Context) {
	utils.LogInfo("AdminRejectRefund called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, uint(id)).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.RefundStatus != models.RefundStatusRequested {
		utils.BadRequest(c, utils.ErrRefundNotRequested.Error(), nil)
		return
	}

	order.RefundStatus = models.RefundStatusRejected
	if err := config.DB.Save(&order).Error; err != nil {
		utils.LogError("Failed to reject refund for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to reject refund", nil)
		return
	}
	utils.LogInfo("Refund rejected for order ID: %d", order.ID)

	utils.Success(c, "Refund request rejected", gin.H{
		"order_id":      order.ID,
		"refund_status": order.RefundStatus,
	})
}
