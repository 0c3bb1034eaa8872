package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const webhookSecret = "whsec_test"

func webhookRouter() *gin.Engine {
	r := gin.New()
	r.POST("/payments/stripe/webhook", StripeWebhook)
	return r
}

func signedWebhookRequest(t *testing.T, payload []byte) *http.Request {
	t.Helper()

	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)

	req := httptest.NewRequest(http.MethodPost, "/payments/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil))))
	return req
}

func sessionCompletedPayload(orderID uint) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test", "payment_intent": "pi_test", "metadata": {"order_id": "%d"}}}
	}`, orderID))
}

func createPendingOrder(t *testing.T, db *gorm.DB, method string, total float64) models.Order {
	t.Helper()

	order := models.Order{TotalAmount: total, PaymentMethod: method,
		PaymentStatus: models.PaymentStatusPending, OrderStatus: models.OrderStatusPending,
		RefundStatus: models.RefundStatusNone}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	setupTestDB(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)

	payload := sessionCompletedPayload(1)
	req := httptest.NewRequest(http.MethodPost, "/payments/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")

	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhookRejectsMissingSignature(t *testing.T) {
	setupTestDB(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/stripe/webhook", bytes.NewReader(sessionCompletedPayload(1)))
	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhookSettlesOrder(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	order := createPendingOrder(t, db, models.PaymentMethodStripe, 3200)

	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, signedWebhookRequest(t, sessionCompletedPayload(order.ID)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, after.PaymentStatus)
	assert.Equal(t, models.OrderStatusPaid, after.OrderStatus)
	assert.Equal(t, "cs_test", after.StripeSessionID)
	assert.Equal(t, "pi_test", after.StripePaymentIntentID)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(3200), wallet.Balance)
}

func TestStripeWebhookRedeliveryIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	order := createPendingOrder(t, db, models.PaymentMethodStripe, 1800)

	router := webhookRouter()
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(t, sessionCompletedPayload(order.ID)))
		require.Equal(t, http.StatusOK, w.Code)
	}

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(1800), wallet.Balance, "redelivery must not credit twice")

	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStripeWebhookAcksUnhandledEventTypes(t *testing.T) {
	setupTestDB(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)

	payload := []byte(`{"id": "evt_2", "type": "invoice.paid", "data": {"object": {}}}`)
	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, signedWebhookRequest(t, payload))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStripeWebhookAcksUnknownOrder(t *testing.T) {
	setupTestDB(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)

	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, signedWebhookRequest(t, sessionCompletedPayload(999)))
	assert.Equal(t, http.StatusOK, w.Code, "unknown orders are acked so the provider stops retrying")
}
