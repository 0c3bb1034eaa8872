package models

import (
	"time"
)

// Order status values. Cancelled is terminal: once an order is cancelled no
// further status change is accepted.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment status values (secondary axis, independent of order status)
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment methods
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodStripe = "stripe"
	PaymentMethodEsewa  = "esewa"
	PaymentMethodKhalti = "khalti"
)

// Refund reasons
const (
	RefundReasonChangeOfMind = "change_of_mind"
	RefundReasonSizeIssue    = "size_issue"
	RefundReasonDamagedItem  = "damaged_item"
	RefundReasonWrongItem    = "wrong_item"
)

// Refund status values
const (
	RefundStatusNone      = "none"
	RefundStatusRequested = "requested"
	RefundStatusApproved  = "approved"
	RefundStatusRejected  = "rejected"
	RefundStatusRefunded  = "refunded"
)

// Refund methods
const (
	RefundMethodWallet          = "wallet"
	RefundMethodOriginalPayment = "original_payment"
)

// ShippingInfo is the address snapshot taken at checkout.
type ShippingInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Province string `json:"province"`
	Notes    string `json:"notes"`
}

// Order is the central entity of the order lifecycle. Items, shipping and
// coupon fields are immutable snapshots taken at creation; orders are never
// deleted.
type Order struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `json:"user_id"` // nil = guest checkout
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	Shipping ShippingInfo `json:"shipping" gorm:"embedded;embeddedPrefix:shipping_"`

	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status" gorm:"default:'pending'"`
	OrderStatus   string  `json:"order_status" gorm:"default:'pending'"`

	// Provider references
	StripeSessionID       string `json:"stripe_session_id,omitempty"`
	StripePaymentIntentID string `json:"stripe_payment_intent_id,omitempty"`
	EsewaRefID            string `json:"esewa_ref_id,omitempty"`
	KhaltiPidx            string `json:"khalti_pidx,omitempty"`

	// Coupon snapshot
	CouponCode     string  `json:"coupon_code,omitempty"`
	CouponType     string  `json:"coupon_type,omitempty"`
	CouponValue    float64 `json:"coupon_value,omitempty"`
	CouponDiscount float64 `json:"coupon_discount,omitempty"`

	// Refund meta
	RefundRequested   bool       `json:"refund_requested" gorm:"default:false"`
	RefundRequestedAt *time.Time `json:"refund_requested_at,omitempty"`
	RefundReason      string     `json:"refund_reason,omitempty"`
	RefundStatus      string     `json:"refund_status" gorm:"default:'none'"`
	RefundMethod      string     `json:"refund_method,omitempty"`
	RefundAmount      float64    `json:"refund_amount,omitempty"`
	RefundedAt        *time.Time `json:"refunded_at,omitempty"`
	RefundedBy        *uint      `json:"refunded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a denormalized line-item snapshot: title and price are copied
// from the product at purchase time so later catalog edits do not rewrite
// order history.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id" gorm:"index"`
	ProductID uint    `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}
