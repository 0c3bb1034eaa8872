package utils

import (
	"testing"

	"github.com/prabin-sth/ThreadKart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDirection(t *testing.T) {
	assert.Equal(t, models.DirectionDebit, models.DeriveDirection(models.TransactionTypeDebit))
	assert.Equal(t, models.DirectionCredit, models.DeriveDirection(models.TransactionTypeCredit))
	assert.Equal(t, models.DirectionCredit, models.DeriveDirection(models.TransactionTypeRefund))
	assert.Equal(t, models.DirectionCredit, models.DeriveDirection(models.TransactionTypeCoupon))
	assert.Equal(t, models.DirectionCredit, models.DeriveDirection(models.TransactionTypeManual))
}

func TestStoreWalletSingleton(t *testing.T) {
	db := newTestDB(t)

	first, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	second, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Wallet{}).Where("owner_type = ?", models.WalletOwnerStore).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserWalletPerUser(t *testing.T) {
	db := newTestDB(t)

	a, err := GetOrCreateUserWallet(db, 1)
	require.NoError(t, err)
	b, err := GetOrCreateUserWallet(db, 2)
	require.NoError(t, err)
	again, err := GetOrCreateUserWallet(db, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.ID, again.ID)
	assert.Equal(t, "NPR", a.Currency)
}

func TestAddWalletTransactionCreditAndDebit(t *testing.T) {
	db := newTestDB(t)
	wallet, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)

	require.NoError(t, AddWalletTransaction(db, wallet, WalletTransactionParams{
		Type:   models.TransactionTypeCredit,
		Amount: 1000,
		Source: models.TransactionSourceSystem,
	}))
	assert.Equal(t, float64(1000), wallet.Balance)

	require.NoError(t, AddWalletTransaction(db, wallet, WalletTransactionParams{
		Type:   models.TransactionTypeDebit,
		Amount: 400,
		Source: models.TransactionSourceAdmin,
	}))
	assert.Equal(t, float64(600), wallet.Balance)

	var stored models.Wallet
	require.NoError(t, db.First(&stored, wallet.ID).Error)
	assert.Equal(t, float64(600), stored.Balance)
}

func TestWalletBalanceClampedAtZero(t *testing.T) {
	db := newTestDB(t)
	wallet, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)

	require.NoError(t, AddWalletTransaction(db, wallet, WalletTransactionParams{
		Type:   models.TransactionTypeDebit,
		Amount: 250,
	}))
	assert.Equal(t, float64(0), wallet.Balance, "debit past zero clamps, never negative")
}

func TestAddWalletTransactionAppliesToStoredBalance(t *testing.T) {
	db := newTestDB(t)
	first, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	second, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)

	require.NoError(t, AddWalletTransaction(db, first, WalletTransactionParams{
		Type:   models.TransactionTypeCredit,
		Amount: 300,
	}))
	// second still holds a balance of 0; the debit must apply against the
	// stored 300, not overwrite it with a stale copy.
	require.NoError(t, AddWalletTransaction(db, second, WalletTransactionParams{
		Type:   models.TransactionTypeDebit,
		Amount: 100,
	}))
	assert.Equal(t, float64(200), second.Balance)

	var stored models.Wallet
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, float64(200), stored.Balance)
}

func TestAddWalletTransactionIgnoresNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	wallet, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)

	require.NoError(t, AddWalletTransaction(db, wallet, WalletTransactionParams{
		Type:   models.TransactionTypeCredit,
		Amount: 0,
	}))
	require.NoError(t, AddWalletTransaction(db, wallet, WalletTransactionParams{
		Type:   models.TransactionTypeCredit,
		Amount: -50,
	}))

	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, float64(0), wallet.Balance)
}

func TestRefundTransactionsAreLocked(t *testing.T) {
	db := newTestDB(t)
	wallet, err := GetOrCreateUserWallet(db, 7)
	require.NoError(t, err)

	orderID := uint(42)
	require.NoError(t, AddWalletTransaction(db, wallet, WalletTransactionParams{
		Type:           models.TransactionTypeRefund,
		Amount:         900,
		RelatedOrderID: &orderID,
	}))

	var txn models.WalletTransaction
	require.NoError(t, db.Where("wallet_id = ?", wallet.ID).First(&txn).Error)
	assert.True(t, txn.Locked)
	assert.Equal(t, models.DirectionCredit, txn.Direction)
	assert.NotEmpty(t, txn.Reference)
}

func TestHasTransactionForOrder(t *testing.T) {
	db := newTestDB(t)
	wallet, err := GetOrCreateUserWallet(db, 3)
	require.NoError(t, err)

	orderID := uint(11)
	exists, err := HasTransactionForOrder(db, wallet.ID, orderID, models.TransactionTypeRefund)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, AddWalletTransaction(db, wallet, WalletTransactionParams{
		Type:           models.TransactionTypeRefund,
		Amount:         500,
		RelatedOrderID: &orderID,
	}))

	exists, err = HasTransactionForOrder(db, wallet.ID, orderID, models.TransactionTypeRefund)
	require.NoError(t, err)
	assert.True(t, exists)

	// A credit for the same order does not count as a refund
	exists, err = HasTransactionForOrder(db, wallet.ID, orderID, models.TransactionTypeCredit)
	require.NoError(t, err)
	assert.False(t, exists)
}
