package utils

import (
	"strings"

	"github.com/prabin-sth/ThreadKart/models"
)

// Provinces treated as inside the Kathmandu valley for the shipping fee
// table.
var insideValleyCities = map[string]bool{
	"kathmandu": true,
	"lalitpur":  true,
	"bhaktapur": true,
}

// ShippingFee returns the delivery charge for an order subtotal shipped to
// the given city, per the settings fee table. Orders at or above the free
// shipping threshold ship free.
func ShippingFee(settings *models.Settings, city string, subtotal float64) float64 {
	if settings.FreeShippingThreshold > 0 && subtotal >= settings.FreeShippingThreshold {
		return 0
	}
	if insideValleyCities[strings.ToLower(strings.TrimSpace(city))] {
		return settings.ShippingInsideValley
	}
	return settings.ShippingOutsideValley
}
