package utils

import (
	"math"
	"strings"
	"time"

	"github.com/prabin-sth/ThreadKart/models"
	"gorm.io/gorm"
)

// CouponQuote is the result of validating a coupon against a subtotal.
type CouponQuote struct {
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Discount   float64 `json:"discount"`
	FinalTotal float64 `json:"final_total"`
}

// CouponDiscount computes the discount a coupon grants on a subtotal.
// Fixed coupons grant min(value, subtotal); percent coupons grant
// round(subtotal*value/100). Either way the discount is clamped to the
// subtotal so the total never goes negative.
func CouponDiscount(coupon *models.Coupon, subtotal float64) float64 {
	var discount float64
	switch coupon.Type {
	case models.CouponTypeFixed:
		discount = coupon.Value
	case models.CouponTypePercent:
		discount = math.Round(subtotal * coupon.Value / 100)
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// ValidateCoupon checks a coupon code against a subtotal and returns the
// discount quote. Errors are terminal for the attempt: ErrCouponNotFound,
// ErrCouponInactive, ErrCouponExpired, ErrCouponExhausted.
func ValidateCoupon(db *gorm.DB, code string, subtotal float64) (*CouponQuote, error) {
	if subtotal <= 0 {
		return nil, ErrInvalidSubtotal
	}

	var coupon models.Coupon
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if err := db.Where("code = ?", normalized).First(&coupon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if !coupon.Active {
		return nil, ErrCouponInactive
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, ErrCouponExhausted
	}

	discount := CouponDiscount(&coupon, subtotal)
	return &CouponQuote{
		Code:       coupon.Code,
		Type:       coupon.Type,
		Value:      coupon.Value,
		Discount:   discount,
		FinalTotal: subtotal - discount,
	}, nil
}

// ConsumeCoupon increments a coupon's usage counter inside the caller's
// transaction. The usage cap is re-checked in the UPDATE itself, not only at
// validate time, so two concurrent checkouts cannot both redeem the last
// use. Returns ErrCouponExhausted when the guard fails.
func ConsumeCoupon(tx *gorm.DB, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	result := tx.Model(&models.Coupon{}).
		Where("code = ? AND active = ? AND (max_uses IS NULL OR used_count < max_uses)", normalized, true).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing coupon from an exhausted one
		var coupon models.Coupon
		if err := tx.Where("code = ?", normalized).First(&coupon).Error; err != nil {
			return ErrCouponNotFound
		}
		if !coupon.Active {
			return ErrCouponInactive
		}
		return ErrCouponExhausted
	}
	return nil
}
