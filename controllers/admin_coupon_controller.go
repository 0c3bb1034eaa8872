package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// AdminListCoupons returns every coupon with its usage counters.
func AdminListCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := config.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}
	utils.Success(c, "Coupons retrieved successfully", gin.H{"coupons": coupons})
}

// AdminCreateCoupon creates a coupon. Codes are stored upper-cased and must
// be unique.
func AdminCreateCoupon(c *gin.Context) {
	utils.LogInfo("AdminCreateCoupon called")

	var req struct {
		Code      string     `json:"code" binding:"required"`
		Type      string     `json:"type" binding:"required"`
		Value     float64    `json:"value" binding:"required"`
		MaxUses   *int       `json:"max_uses"`
		ExpiresAt *time.Time `json:"expires_at"`
		Note      string     `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid coupon data", err.Error())
		return
	}

	if req.Type != models.CouponTypeFixed && req.Type != models.CouponTypePercent {
		utils.BadRequest(c, "Coupon type must be fixed or percent", nil)
		return
	}
	if req.Value <= 0 {
		utils.BadRequest(c, "Coupon value must be positive", nil)
		return
	}
	if req.Type == models.CouponTypePercent && req.Value > 100 {
		utils.BadRequest(c, "Percent coupons cannot exceed 100", nil)
		return
	}
	if req.MaxUses != nil && *req.MaxUses < 1 {
		utils.BadRequest(c, "max_uses must be at least 1", nil)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var existing models.Coupon
	if err := config.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		utils.Conflict(c, "Coupon code already exists", nil)
		return
	}

	coupon := models.Coupon{
		Code:      code,
		Type:      req.Type,
		Value:     req.Value,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
		Active:    true,
		Note:      req.Note,
	}
	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon: %v", err)
		utils.InternalServerError(c, "Failed to create coupon", nil)
		return
	}
	utils.LogInfo("Created coupon: %s", coupon.Code)

	utils.Created(c, "Coupon created successfully", gin.H{"coupon": coupon})
}

// AdminUpdateCoupon edits a coupon. The code itself is immutable; orders
// snapshot it.
func AdminUpdateCoupon(c *gin.Context) {
	utils.LogInfo("AdminUpdateCoupon called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, uint(id)).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	var req struct {
		Value     *float64   `json:"value"`
		MaxUses   *int       `json:"max_uses"`
		ExpiresAt *time.Time `json:"expires_at"`
		Active    *bool      `json:"active"`
		Note      *string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid coupon data", err.Error())
		return
	}

	if req.Value != nil {
		if *req.Value <= 0 {
			utils.BadRequest(c, "Coupon value must be positive", nil)
			return
		}
		if coupon.Type == models.CouponTypePercent && *req.Value > 100 {
			utils.BadRequest(c, "Percent coupons cannot exceed 100", nil)
			return
		}
		coupon.Value = *req.Value
	}
	if req.MaxUses != nil {
		if *req.MaxUses < 1 {
			utils.BadRequest(c, "max_uses must be at least 1", nil)
			return
		}
		coupon.MaxUses = req.MaxUses
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}
	if req.Note != nil {
		coupon.Note = *req.Note
	}

	if err := config.DB.Save(&coupon).Error; err != nil {
		utils.LogError("Failed to update coupon ID: %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to update coupon", nil)
		return
	}
	utils.LogInfo("Updated coupon: %s", coupon.Code)

	utils.Success(c, "Coupon updated successfully", gin.H{"coupon": coupon})
}

// AdminDeleteCoupon soft-deletes a coupon so historical orders keep their
// snapshot while the code stops validating.
func AdminDeleteCoupon(c *gin.Context) {
	utils.LogInfo("AdminDeleteCoupon called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	result := config.DB.Delete(&models.Coupon{}, uint(id))
	if result.Error != nil {
		utils.LogError("Failed to delete coupon ID: %d: %v", id, result.Error)
		utils.InternalServerError(c, "Failed to delete coupon", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Coupon not found")
		return
	}
	utils.LogInfo("Deleted coupon ID: %d", id)

	utils.Success(c, "Coupon deleted", gin.H{"coupon_id": uint(id)})
}
