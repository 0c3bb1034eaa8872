package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// GetStoreSettings exposes the storefront-facing settings: which payment
// methods are on, shipping fees, and whether the store is in maintenance.
func GetStoreSettings(c *gin.Context) {
	settings, err := models.GetSettings(config.DB)
	if err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", nil)
		return
	}

	utils.Success(c, "Settings retrieved successfully", gin.H{
		"payment_methods": gin.H{
			models.PaymentMethodCOD:    settings.CODEnabled,
			models.PaymentMethodStripe: settings.StripeEnabled,
			models.PaymentMethodEsewa:  settings.EsewaEnabled,
			models.PaymentMethodKhalti: settings.KhaltiEnabled,
		},
		"shipping": gin.H{
			"inside_valley":           settings.ShippingInsideValley,
			"outside_valley":          settings.ShippingOutsideValley,
			"free_shipping_threshold": settings.FreeShippingThreshold,
		},
		"maintenance_mode": settings.MaintenanceMode,
	})
}

// GetShippingQuote computes the delivery fee for a city and cart subtotal.
func GetShippingQuote(c *gin.Context) {
	var req struct {
		City     string  `json:"city" binding:"required"`
		Subtotal float64 `json:"subtotal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "City and subtotal are required", err.Error())
		return
	}

	settings, err := models.GetSettings(config.DB)
	if err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to compute shipping", nil)
		return
	}

	fee := utils.ShippingFee(settings, req.City, req.Subtotal)
	utils.Success(c, "Shipping quote", gin.H{
		"city":     req.City,
		"subtotal": req.Subtotal,
		"fee":      fee,
		"free":     fee == 0,
	})
}
