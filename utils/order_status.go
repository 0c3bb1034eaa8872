package utils

import (
	"github.com/prabin-sth/ThreadKart/models"
)

var allowedOrderStatuses = []string{
	models.OrderStatusPending,
	models.OrderStatusPaid,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

// AllowedOrderStatuses returns the status allow-list for error payloads.
func AllowedOrderStatuses() []string {
	statuses := make([]string, len(allowedOrderStatuses))
	copy(statuses, allowedOrderStatuses)
	return statuses
}

// ApplyOrderStatus transitions an order to newStatus in memory. It enforces
// the state machine: only allow-listed statuses are accepted
// (ErrInvalidStatus), and a cancelled order is terminal (ErrOrderLocked).
// Reaching paid also marks the payment status paid. The caller persists the
// order. No stock or coupon re-validation happens here; both were committed
// at creation.
func ApplyOrderStatus(order *models.Order, newStatus string) error {
	valid := false
	for _, s := range allowedOrderStatuses {
		if s == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidStatus
	}

	if order.OrderStatus == models.OrderStatusCancelled {
		return ErrOrderLocked
	}

	if newStatus == models.OrderStatusPaid {
		order.PaymentStatus = models.PaymentStatusPaid
	}
	order.OrderStatus = newStatus
	return nil
}
