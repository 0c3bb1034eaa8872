package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// AdminGetStoreWallet returns the store's revenue ledger.
func AdminGetStoreWallet(c *gin.Context) {
	wallet, err := utils.GetOrCreateStoreWallet(config.DB)
	if err != nil {
		utils.LogError("Failed to load store wallet: %v", err)
		utils.InternalServerError(c, "Failed to fetch wallet", nil)
		return
	}

	transactions, err := utils.WalletTransactions(config.DB, wallet.ID)
	if err != nil {
		utils.LogError("Failed to load store wallet transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch wallet", nil)
		return
	}

	utils.Success(c, "Wallet retrieved successfully", gin.H{
		"wallet": gin.H{
			"balance":      wallet.Balance,
			"currency":     wallet.Currency,
			"transactions": transactions,
		},
	})
}

// AdminAdjustStoreWallet records a manual credit or debit against the store
// wallet. Debits beyond the balance are rejected rather than clamped so the
// operator sees the mistake instead of a silently zeroed ledger.
func AdminAdjustStoreWallet(c *gin.Context) {
	utils.LogInfo("AdminAdjustStoreWallet called")

	var req struct {
		Type   string  `json:"type" binding:"required"`
		Amount float64 `json:"amount" binding:"required"`
		Note   string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Type and amount are required", err.Error())
		return
	}

	if req.Type != models.TransactionTypeCredit && req.Type != models.TransactionTypeDebit {
		utils.BadRequest(c, "Type must be credit or debit", nil)
		return
	}
	if req.Amount <= 0 {
		utils.BadRequest(c, "Amount must be positive", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to adjust wallet", nil)
		return
	}

	wallet, err := utils.GetOrCreateStoreWallet(tx)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load store wallet: %v", err)
		utils.InternalServerError(c, "Failed to adjust wallet", nil)
		return
	}

	if req.Type == models.TransactionTypeDebit && req.Amount > wallet.Balance {
		tx.Rollback()
		utils.BadRequest(c, utils.ErrInsufficientWalletBalance.Error(), gin.H{"balance": wallet.Balance})
		return
	}

	if err := utils.AddWalletTransaction(tx, wallet, utils.WalletTransactionParams{
		Type:   req.Type,
		Amount: req.Amount,
		Note:   req.Note,
		Source: models.TransactionSourceAdmin,
	}); err != nil {
		tx.Rollback()
		utils.LogError("Failed to record wallet adjustment: %v", err)
		utils.InternalServerError(c, "Failed to adjust wallet", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit wallet adjustment: %v", err)
		utils.InternalServerError(c, "Failed to adjust wallet", nil)
		return
	}
	utils.LogInfo("Store wallet adjusted: %s %.2f", req.Type, req.Amount)

	utils.Success(c, "Wallet adjusted", gin.H{"balance": wallet.Balance})
}
