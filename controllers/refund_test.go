package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func refundRouter(user models.User, admin models.Admin) *gin.Engine {
	r := gin.New()
	r.POST("/orders/:id/refund-request", authAs(user), RequestRefund)
	r.POST("/admin/orders/:id/refund-wallet", adminAs(admin), AdminIssueWalletRefund)
	r.POST("/admin/orders/:id/refund-reject", adminAs(admin), AdminRejectRefund)
	return r
}

func createPaidOrder(t *testing.T, db *gorm.DB, userID uint, total float64) models.Order {
	t.Helper()

	order := models.Order{
		UserID:        &userID,
		TotalAmount:   total,
		PaymentMethod: models.PaymentMethodEsewa,
		PaymentStatus: models.PaymentStatusPaid,
		OrderStatus:   models.OrderStatusDelivered,
		RefundStatus:  models.RefundStatusNone,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestRequestRefundSuccess(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 2500)

	w := performJSON(t, refundRouter(user, admin), http.MethodPost,
		fmt.Sprintf("/orders/%d/refund-request", order.ID),
		map[string]interface{}{"reason": "damaged_item"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.True(t, after.RefundRequested)
	assert.Equal(t, models.RefundStatusRequested, after.RefundStatus)
	assert.Equal(t, "damaged_item", after.RefundReason)
	assert.NotNil(t, after.RefundRequestedAt)
}

func TestRequestRefundRejectsChangeOfMind(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 1200)

	for _, reason := range []string{"change_of_mind", "regret", ""} {
		w := performJSON(t, refundRouter(user, admin), http.MethodPost,
			fmt.Sprintf("/orders/%d/refund-request", order.ID),
			map[string]interface{}{"reason": reason})
		assert.Equal(t, http.StatusBadRequest, w.Code, "reason %q must be rejected", reason)
	}
}

func TestRequestRefundWindowExpired(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 1200)

	stale := time.Now().Add(-8 * 24 * time.Hour)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		UpdateColumn("updated_at", stale).Error)

	w := performJSON(t, refundRouter(user, admin), http.MethodPost,
		fmt.Sprintf("/orders/%d/refund-request", order.ID),
		map[string]interface{}{"reason": "wrong_item"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestRefundTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 1200)

	router := refundRouter(user, admin)
	path := fmt.Sprintf("/orders/%d/refund-request", order.ID)

	w := performJSON(t, router, http.MethodPost, path, map[string]interface{}{"reason": "wrong_item"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodPost, path, map[string]interface{}{"reason": "wrong_item"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestRefundDeliveredCODOrder(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)

	// A COD order moved pending -> shipped -> delivered never has its
	// payment status flipped to paid. It can still request a refund.
	order := models.Order{UserID: &user.ID, TotalAmount: 500,
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending, OrderStatus: models.OrderStatusDelivered,
		RefundStatus: models.RefundStatusNone}
	require.NoError(t, db.Create(&order).Error)

	w := performJSON(t, refundRouter(user, admin), http.MethodPost,
		fmt.Sprintf("/orders/%d/refund-request", order.ID),
		map[string]interface{}{"reason": "damaged_item"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.RefundStatusRequested, after.RefundStatus)
}

func TestRequestRefundOtherUsersOrder(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, owner.ID, 900)

	intruder := models.User{Name: "Maya", Email: "maya@example.com", Password: "x"}
	require.NoError(t, db.Create(&intruder).Error)

	w := performJSON(t, refundRouter(intruder, admin), http.MethodPost,
		fmt.Sprintf("/orders/%d/refund-request", order.ID),
		map[string]interface{}{"reason": "damaged_item"})
	assert.Equal(t, http.StatusNotFound, w.Code, "foreign orders look like missing orders")
}

func requestRefund(t *testing.T, db *gorm.DB, order *models.Order, reason string) {
	t.Helper()

	now := time.Now()
	order.RefundRequested = true
	order.RefundRequestedAt = &now
	order.RefundReason = reason
	order.RefundStatus = models.RefundStatusRequested
	require.NoError(t, db.Save(order).Error)
}

func TestAdminIssueWalletRefund(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 2500)
	requestRefund(t, db, &order, "damaged_item")

	w := performJSON(t, refundRouter(user, admin), http.MethodPost,
		fmt.Sprintf("/admin/orders/%d/refund-wallet", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.RefundStatusRefunded, after.RefundStatus)
	assert.Equal(t, models.RefundMethodWallet, after.RefundMethod)
	assert.Equal(t, float64(2500), after.RefundAmount)
	require.NotNil(t, after.RefundedBy)
	assert.Equal(t, admin.ID, *after.RefundedBy)
	assert.NotNil(t, after.RefundedAt)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(2500), wallet.Balance, "refund is recorded on the store ledger")

	userWallet, err := utils.GetOrCreateUserWallet(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, userWallet.Balance, "customer wallet stays untouched")

	var txn models.WalletTransaction
	require.NoError(t, db.Where("wallet_id = ?", wallet.ID).First(&txn).Error)
	assert.Equal(t, models.TransactionTypeRefund, txn.Type)
	assert.True(t, txn.Locked)
}

func TestAdminIssueWalletRefundIneligibleReasons(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)

	for _, reason := range []string{models.RefundReasonChangeOfMind, models.RefundReasonSizeIssue} {
		order := createPaidOrder(t, db, user.ID, 1000)
		requestRefund(t, db, &order, reason)

		w := performJSON(t, refundRouter(user, admin), http.MethodPost,
			fmt.Sprintf("/admin/orders/%d/refund-wallet", order.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "reason %s must not qualify", reason)
	}

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Zero(t, wallet.Balance)
}

func TestAdminIssueWalletRefundTwice(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 1500)
	requestRefund(t, db, &order, "wrong_item")

	router := refundRouter(user, admin)
	path := fmt.Sprintf("/admin/orders/%d/refund-wallet", order.ID)

	w := performJSON(t, router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Equal(t, float64(1500), wallet.Balance, "second issuance must not credit again")
}

func TestAdminIssueWalletRefundNotRequested(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 700)

	w := performJSON(t, refundRouter(user, admin), http.MethodPost,
		fmt.Sprintf("/admin/orders/%d/refund-wallet", order.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRejectRefund(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 700)
	requestRefund(t, db, &order, "damaged_item")

	w := performJSON(t, refundRouter(user, admin), http.MethodPost,
		fmt.Sprintf("/admin/orders/%d/refund-reject", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.RefundStatusRejected, after.RefundStatus)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Zero(t, wallet.Balance)
}

func TestAdminIssueWalletRefundAfterRejection(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	admin := createTestAdmin(t, db)
	order := createPaidOrder(t, db, user.ID, 900)
	requestRefund(t, db, &order, "damaged_item")

	router := refundRouter(user, admin)

	w := performJSON(t, router, http.MethodPost,
		fmt.Sprintf("/admin/orders/%d/refund-reject", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodPost,
		fmt.Sprintf("/admin/orders/%d/refund-wallet", order.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "a rejected request must not be payable")

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.RefundStatusRejected, after.RefundStatus)

	wallet, err := utils.GetOrCreateStoreWallet(db)
	require.NoError(t, err)
	assert.Zero(t, wallet.Balance, "no money moves for a rejected request")
}
