package models

import (
	"time"

	"gorm.io/gorm"
)

// Settings is the store-wide configuration singleton: payment method
// toggles, shipping fee table and the maintenance switch. Exactly one row
// exists; it is re-read on every checkout rather than cached.
type Settings struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StoreEmail string    `json:"store_email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	CODEnabled    bool `json:"cod_enabled" gorm:"default:true"`
	StripeEnabled bool `json:"stripe_enabled" gorm:"default:true"`
	EsewaEnabled  bool `json:"esewa_enabled" gorm:"default:true"`
	KhaltiEnabled bool `json:"khalti_enabled" gorm:"default:true"`

	ShippingInsideValley  float64 `json:"shipping_inside_valley" gorm:"default:150"`
	ShippingOutsideValley float64 `json:"shipping_outside_valley" gorm:"default:300"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold" gorm:"default:10000"`

	MaintenanceMode bool `json:"maintenance_mode" gorm:"default:false"`
}

// GetSettings loads the singleton, creating it with defaults on first use.
func GetSettings(db *gorm.DB) (*Settings, error) {
	var settings Settings
	err := db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = Settings{
			CODEnabled:            true,
			StripeEnabled:         true,
			EsewaEnabled:          true,
			KhaltiEnabled:         true,
			ShippingInsideValley:  150,
			ShippingOutsideValley: 300,
			FreeShippingThreshold: 10000,
		}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// PaymentMethodEnabled reports whether the given checkout payment method is
// currently switched on.
func (s *Settings) PaymentMethodEnabled(method string) bool {
	switch method {
	case PaymentMethodCOD:
		return s.CODEnabled
	case PaymentMethodStripe:
		return s.StripeEnabled
	case PaymentMethodEsewa:
		return s.EsewaEnabled
	case PaymentMethodKhalti:
		return s.KhaltiEnabled
	default:
		return false
	}
}
