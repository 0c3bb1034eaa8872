package utils

import (
	"fmt"

	"github.com/prabin-sth/ThreadKart/models"
	"gorm.io/gorm"
)

// ProviderRefs carries the provider-specific identifiers a payment adapter
// learned during confirmation. Only non-empty fields are persisted.
type ProviderRefs struct {
	StripeSessionID       string
	StripePaymentIntentID string
	EsewaRefID            string
	KhaltiPidx            string
}

// SettleOrderPayment is the single normalized "mark order paid" operation
// every payment adapter funnels into. Inside the caller's transaction it
// sets both payment and order status to paid, records provider references,
// and credits the store wallet with the order total. If the order is already
// paid it is a no-op success; that check is the idempotency anchor that
// makes webhook redelivery and repeated verification converge.
func SettleOrderPayment(tx *gorm.DB, order *models.Order, note string, refs ProviderRefs) error {
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil
	}

	order.PaymentStatus = models.PaymentStatusPaid
	if order.OrderStatus == models.OrderStatusPending {
		order.OrderStatus = models.OrderStatusPaid
	}
	if refs.StripeSessionID != "" {
		order.StripeSessionID = refs.StripeSessionID
	}
	if refs.StripePaymentIntentID != "" {
		order.StripePaymentIntentID = refs.StripePaymentIntentID
	}
	if refs.EsewaRefID != "" {
		order.EsewaRefID = refs.EsewaRefID
	}
	if refs.KhaltiPidx != "" {
		order.KhaltiPidx = refs.KhaltiPidx
	}

	if err := tx.Save(order).Error; err != nil {
		return err
	}

	wallet, err := GetOrCreateStoreWallet(tx)
	if err != nil {
		return err
	}

	if note == "" {
		note = fmt.Sprintf("Payment for order %d", order.ID)
	}
	return AddWalletTransaction(tx, wallet, WalletTransactionParams{
		Type:           models.TransactionTypeCredit,
		Amount:         order.TotalAmount,
		Note:           note,
		RelatedOrderID: &order.ID,
		Source:         models.TransactionSourceSystem,
	})
}
