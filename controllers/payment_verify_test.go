package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRouter() *gin.Engine {
	r := gin.New()
	r.POST("/payments/esewa/verify", VerifyEsewaPayment)
	r.POST("/payments/khalti/initiate", InitiateKhaltiPayment)
	r.POST("/payments/khalti/verify", VerifyKhaltiPayment)
	return r
}

func fakeEsewa(t *testing.T, responseCode string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<response><response_code>" + responseCode + "</response_code></response>"))
	}))
	t.Cleanup(server.Close)
	t.Setenv("ESEWA_VERIFY_URL", server.URL)
	return server
}

func TestVerifyEsewaPaymentSettles(t *testing.T) {
	db := setupTestDB(t)
	fakeEsewa(t, "Success")
	order := createPendingOrder(t, db, models.PaymentMethodEsewa, 2500)

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/esewa/verify", map[string]interface{}{
		"order_id": order.ID, "amount": "2500", "ref_id": "ES-REF-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, after.PaymentStatus)
	assert.Equal(t, "ES-REF-1", after.EsewaRefID)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(2500), wallet.Balance)
}

func TestVerifyEsewaPaymentRejection(t *testing.T) {
	db := setupTestDB(t)
	fakeEsewa(t, "Failure")
	order := createPendingOrder(t, db, models.PaymentMethodEsewa, 2500)

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/esewa/verify", map[string]interface{}{
		"order_id": order.ID, "amount": "2500", "ref_id": "ES-REF-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, after.PaymentStatus, "rejected verification must not touch the order")
}

func TestVerifyEsewaPaymentAlreadyPaid(t *testing.T) {
	db := setupTestDB(t)
	fakeEsewa(t, "Success")
	order := createPendingOrder(t, db, models.PaymentMethodEsewa, 2500)
	require.NoError(t, utils.SettleOrderPayment(db, &order, "", utils.ProviderRefs{EsewaRefID: "ES-REF-1"}))

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/esewa/verify", map[string]interface{}{
		"order_id": order.ID, "amount": "2500", "ref_id": "ES-REF-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(2500), wallet.Balance, "re-verification must not credit twice")
}

func TestVerifyEsewaPaymentMissingFields(t *testing.T) {
	setupTestDB(t)
	fakeEsewa(t, "Success")

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/esewa/verify", map[string]interface{}{
		"order_id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func fakeKhalti(t *testing.T, lookupStatus string, orderID string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/epayment/initiate/":
			json.NewEncoder(w).Encode(utils.KhaltiInitiateResponse{Pidx: "px_1", PaymentURL: "https://pay.example/px_1"})
		case "/epayment/lookup/":
			json.NewEncoder(w).Encode(utils.KhaltiLookupResponse{Pidx: "px_1", Status: lookupStatus, PurchaseOrderID: orderID})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	t.Setenv("KHALTI_API_BASE", server.URL)
}

func TestInitiateKhaltiPayment(t *testing.T) {
	db := setupTestDB(t)
	fakeKhalti(t, "Pending", "")
	order := createPendingOrder(t, db, models.PaymentMethodKhalti, 4500)

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/khalti/initiate", map[string]interface{}{
		"order_id": order.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "px_1", data["pidx"])
	assert.Equal(t, "https://pay.example/px_1", data["payment_url"])

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, "px_1", after.KhaltiPidx)
}

func TestInitiateKhaltiPaymentAlreadyPaid(t *testing.T) {
	db := setupTestDB(t)
	fakeKhalti(t, "Pending", "")
	order := createPendingOrder(t, db, models.PaymentMethodKhalti, 4500)
	require.NoError(t, utils.SettleOrderPayment(db, &order, "", utils.ProviderRefs{}))

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/khalti/initiate", map[string]interface{}{
		"order_id": order.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyKhaltiPaymentSettles(t *testing.T) {
	db := setupTestDB(t)
	order := createPendingOrder(t, db, models.PaymentMethodKhalti, 4500)
	fakeKhalti(t, "Completed", "1")

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/khalti/verify", map[string]interface{}{
		"pidx": "px_1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, after.PaymentStatus)
	assert.Equal(t, "px_1", after.KhaltiPidx)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(4500), wallet.Balance)
}

func TestVerifyKhaltiPaymentIncomplete(t *testing.T) {
	db := setupTestDB(t)
	order := createPendingOrder(t, db, models.PaymentMethodKhalti, 4500)
	fakeKhalti(t, "Pending", "1")

	w := performJSON(t, paymentRouter(), http.MethodPost, "/payments/khalti/verify", map[string]interface{}{
		"pidx": "px_1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, after.PaymentStatus)
}
