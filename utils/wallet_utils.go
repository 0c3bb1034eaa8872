package utils

import (
	"github.com/google/uuid"
	"github.com/prabin-sth/ThreadKart/models"
	"gorm.io/gorm"
)

// WalletTransactionParams describes one ledger entry to record. Direction is
// always derived from Type; callers never pass it.
type WalletTransactionParams struct {
	Type           string
	Amount         float64
	Note           string
	RelatedOrderID *uint
	Source         string
}

// GetOrCreateStoreWallet returns the operator's singleton wallet, creating
// it on first use.
func GetOrCreateStoreWallet(db *gorm.DB) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.Where("owner_type = ?", models.WalletOwnerStore).First(&wallet).Error
	if err == gorm.ErrRecordNotFound {
		wallet = models.Wallet{
			OwnerType: models.WalletOwnerStore,
			Balance:   0,
			Currency:  "NPR",
		}
		if err := db.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetOrCreateUserWallet returns a customer's wallet, creating it on first
// use. Customer wallets share the store wallet's transaction contract.
func GetOrCreateUserWallet(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.Where("owner_type = ? AND user_id = ?", models.WalletOwnerUser, userID).First(&wallet).Error
	if err == gorm.ErrRecordNotFound {
		wallet = models.Wallet{
			OwnerType: models.WalletOwnerUser,
			UserID:    &userID,
			Balance:   0,
			Currency:  "NPR",
		}
		if err := db.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// AddWalletTransaction records one ledger entry and applies it to the
// balance inside the caller's transaction. Amounts <= 0 are a defensive
// no-op rather than an error. Credits add; debits subtract and the balance
// is clamped at zero. The balance is adjusted in a single conditional
// update against the stored row, so a stale wallet copy cannot lose a
// concurrent write. Refund entries are written locked so they can never be
// edited afterwards.
func AddWalletTransaction(tx *gorm.DB, wallet *models.Wallet, params WalletTransactionParams) error {
	if params.Amount <= 0 {
		return nil
	}

	delta := params.Amount
	if models.DeriveDirection(params.Type) == models.DirectionDebit {
		delta = -params.Amount
	}

	source := params.Source
	if source == "" {
		source = models.TransactionSourceAdmin
	}

	transaction := models.WalletTransaction{
		WalletID:       wallet.ID,
		Type:           params.Type,
		Direction:      models.DeriveDirection(params.Type),
		Amount:         params.Amount,
		Note:           params.Note,
		RelatedOrderID: params.RelatedOrderID,
		Locked:         params.Type == models.TransactionTypeRefund,
		Source:         source,
		Reference:      uuid.New().String(),
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
		UpdateColumn("balance", gorm.Expr(
			"CASE WHEN balance + ? < 0 THEN 0 ELSE balance + ? END", delta, delta,
		)).Error; err != nil {
		return err
	}

	var stored models.Wallet
	if err := tx.Select("balance").First(&stored, wallet.ID).Error; err != nil {
		return err
	}
	wallet.Balance = stored.Balance
	return nil
}

// HasTransactionForOrder reports whether the wallet already holds a
// transaction of the given type for the order. This is the idempotency
// guard that keeps refund issuance at-most-once per order.
func HasTransactionForOrder(db *gorm.DB, walletID uint, orderID uint, transactionType string) (bool, error) {
	var count int64
	err := db.Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND related_order_id = ? AND type = ?", walletID, orderID, transactionType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// WalletTransactions returns a wallet's ledger most-recent-first.
func WalletTransactions(db *gorm.DB, walletID uint) ([]models.WalletTransaction, error) {
	var transactions []models.WalletTransaction
	err := db.Where("wallet_id = ?", walletID).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error
	return transactions, err
}
