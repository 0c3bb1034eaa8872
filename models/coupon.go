package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon types
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percent"
)

type Coupon struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"` // stored upper-case
	Type      string         `json:"type"`                             // fixed or percent
	Value     float64        `json:"value" gorm:"check:value >= 0"`
	MaxUses   *int           `json:"max_uses"` // nil = unlimited
	UsedCount int            `json:"used_count" gorm:"default:0"`
	ExpiresAt *time.Time     `json:"expires_at"` // nil = never expires
	Active    bool           `json:"active" gorm:"default:true"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsValid reports whether the coupon can still be applied: it must be
// active, unexpired and not exhausted.
func (c *Coupon) IsValid() bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
		return false
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return false
	}
	return true
}
