package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// AdminGetSettings returns the full settings row, including fields the
// public endpoint hides.
func AdminGetSettings(c *gin.Context) {
	settings, err := models.GetSettings(config.DB)
	if err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", nil)
		return
	}
	utils.Success(c, "Settings retrieved successfully", gin.H{"settings": settings})
}

// AdminUpdateSettings applies partial edits to the settings singleton.
// Changes take effect on the next checkout; in-flight checkouts keep the
// settings they loaded.
func AdminUpdateSettings(c *gin.Context) {
	utils.LogInfo("AdminUpdateSettings called")

	var req struct {
		StoreEmail            *string  `json:"store_email"`
		CODEnabled            *bool    `json:"cod_enabled"`
		StripeEnabled         *bool    `json:"stripe_enabled"`
		EsewaEnabled          *bool    `json:"esewa_enabled"`
		KhaltiEnabled         *bool    `json:"khalti_enabled"`
		ShippingInsideValley  *float64 `json:"shipping_inside_valley"`
		ShippingOutsideValley *float64 `json:"shipping_outside_valley"`
		FreeShippingThreshold *float64 `json:"free_shipping_threshold"`
		MaintenanceMode       *bool    `json:"maintenance_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid settings data", err.Error())
		return
	}

	settings, err := models.GetSettings(config.DB)
	if err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to update settings", nil)
		return
	}

	if req.StoreEmail != nil {
		settings.StoreEmail = *req.StoreEmail
	}
	if req.CODEnabled != nil {
		settings.CODEnabled = *req.CODEnabled
	}
	if req.StripeEnabled != nil {
		settings.StripeEnabled = *req.StripeEnabled
	}
	if req.EsewaEnabled != nil {
		settings.EsewaEnabled = *req.EsewaEnabled
	}
	if req.KhaltiEnabled != nil {
		settings.KhaltiEnabled = *req.KhaltiEnabled
	}
	if req.ShippingInsideValley != nil {
		if *req.ShippingInsideValley < 0 {
			utils.BadRequest(c, "Shipping fees cannot be negative", nil)
			return
		}
		settings.ShippingInsideValley = *req.ShippingInsideValley
	}
	if req.ShippingOutsideValley != nil {
		if *req.ShippingOutsideValley < 0 {
			utils.BadRequest(c, "Shipping fees cannot be negative", nil)
			return
		}
		settings.ShippingOutsideValley = *req.ShippingOutsideValley
	}
	if req.FreeShippingThreshold != nil {
		settings.FreeShippingThreshold = *req.FreeShippingThreshold
	}
	if req.MaintenanceMode != nil {
		settings.MaintenanceMode = *req.MaintenanceMode
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.LogError("Failed to save settings: %v", err)
		utils.InternalServerError(c, "Failed to update settings", nil)
		return
	}
	utils.LogInfo("Settings updated")

	utils.Success(c, "Settings updated successfully", gin.H{"settings": settings})
}
