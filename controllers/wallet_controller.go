package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// GetUserWallet returns the authenticated customer's wallet balance and
// ledger, most recent entries first.
func GetUserWallet(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	wallet, err := utils.GetOrCreateUserWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch wallet", nil)
		return
	}

	transactions, err := utils.WalletTransactions(config.DB, wallet.ID)
	if err != nil {
		utils.LogError("Failed to load wallet transactions for user ID: %d: %v", user.ID, err)
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
