package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error carrying the HTTP status it maps
// to and a machine-readable message.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// BadRequestError creates a 400 Bad Request error
func BadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

// Order state machine errors
var (
	// ErrOrderLocked is returned for any status change attempted on a
	// cancelled order.
	ErrOrderLocked = errors.New("cancelled orders cannot be modified")
	// ErrInvalidStatus is returned for a status outside the allow-list.
	ErrInvalidStatus = errors.New("invalid order status")
)

// Coupon errors
var (
	ErrCouponNotFound   = errors.New("invalid coupon code")
	ErrCouponInactive   = errors.New("coupon is inactive")
	ErrCouponExpired    = errors.New("coupon has expired")
	ErrCouponExhausted  = errors.New("coupon usage limit reached")
	ErrInvalidSubtotal  = errors.New("invalid subtotal")
	ErrInvalidOrderData = errors.New("invalid order data")
)

// Refund errors
var (
	ErrRefundAlreadyRequested = errors.New("refund already requested")
	ErrRefundInvalidReason    = errors.New("invalid refund reason")
	ErrRefundWindowExpired    = errors.New("refund window expired")
	ErrRefundNotRequested     = errors.New("refund has not been requested by customer")
	ErrRefundNotEligible      = errors.New("this order is not eligible for wallet refund")
	ErrAlreadyRefunded        = errors.New("order already refunded")
	ErrDuplicateRefund        = errors.New("wallet refund already exists for this order")
)

// Wallet errors
var (
	ErrInsufficientWalletBalance = errors.New("insufficient wallet balance")
)

// InsufficientStockError is the typed failure of a stock reservation: the
// conditional decrement found fewer units than requested. Terminal for the
// checkout attempt; the caller must not retry the line item.
type InsufficientStockError struct {
	ProductID uint
	Title     string
}

func (e *InsufficientStockError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("insufficient stock for %s", e.Title)
	}
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// VerificationError is the typed failure of a payment provider check.
// Retriable reports whether the failure was transport-level (provider
// unreachable, timed out) rather than an explicit rejection; either way no
// order state was mutated.
type VerificationError struct {
	Provider  string
	Reason    string
	Retriable bool
	Err       error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s verification failed: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s verification failed: %s", e.Provider, e.Reason)
}

func (e *VerificationError) Unwrap() error { return e.Err }
