package utils

import (
	"testing"

	"github.com/prabin-sth/ThreadKart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleOrderPayment(t *testing.T) {
	db := newTestDB(t)
	order := models.Order{TotalAmount: 2500, PaymentMethod: models.PaymentMethodEsewa,
		PaymentStatus: models.PaymentStatusPending, OrderStatus: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, SettleOrderPayment(db, &order, "", ProviderRefs{EsewaRefID: "ES-123"}))

	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPaid, order.OrderStatus)
	assert.Equal(t, "ES-123", order.EsewaRefID)

	wallet, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(2500), wallet.Balance)

	var txn models.WalletTransaction
	require.NoError(t, db.Where("wallet_id = ?", wallet.ID).First(&txn).Error)
	assert.Equal(t, models.TransactionTypeCredit, txn.Type)
	assert.Equal(t, models.TransactionSourceSystem, txn.Source)
	require.NotNil(t, txn.RelatedOrderID)
	assert.Equal(t, order.ID, *txn.RelatedOrderID)
}

func TestSettleOrderPaymentIdempotent(t *testing.T) {
	db := newTestDB(t)
	order := models.Order{TotalAmount: 1800, PaymentMethod: models.PaymentMethodStripe,
		PaymentStatus: models.PaymentStatusPending, OrderStatus: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, SettleOrderPayment(db, &order, "", ProviderRefs{StripeSessionID: "cs_1"}))

	// Replay: the provider redelivers the same confirmation.
	var replayed models.Order
	require.NoError(t, db.First(&replayed, order.ID).Error)
	require.NoError(t, SettleOrderPayment(db, &replayed, "", ProviderRefs{StripeSessionID: "cs_1"}))

	wallet, err := GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(1800), wallet.Balance, "replay must not credit twice")

	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Where("wallet_id = ?", wallet.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettleOrderPaymentKeepsAdvancedStatus(t *testing.T) {
	db := newTestDB(t)
	// COD order already shipped, payment confirmed on delivery.
	order := models.Order{TotalAmount: 900, PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending, OrderStatus: models.OrderStatusShipped}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, SettleOrderPayment(db, &order, "", ProviderRefs{}))

	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusShipped, order.OrderStatus, "settlement only advances pending orders")
}
