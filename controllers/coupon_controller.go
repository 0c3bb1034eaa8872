package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/utils"
)

// ValidateCoupon quotes a coupon against a cart subtotal without consuming a
// use. The authoritative check happens again at checkout, inside the order
// transaction.
func ValidateCoupon(c *gin.Context) {
	utils.LogInfo("ValidateCoupon called")

	var req struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Code and subtotal are required", err.Error())
		return
	}

	quote, err := utils.ValidateCoupon(config.DB, req.Code, req.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrCouponNotFound),
			errors.Is(err, utils.ErrCouponInactive),
			errors.Is(err, utils.ErrCouponExpired),
			errors.Is(err, utils.ErrCouponExhausted),
			errors.Is(err, utils.ErrInvalidSubtotal):
			utils.BadRequest(c, err.Error(), nil)
		default:
			utils.LogError("Coupon validation failed: %v", err)
			utils.InternalServerError(c, "Failed to validate coupon", nil)
		}
		return
	}

	utils.Success(c, "Coupon is valid", gin.H{"coupon": quote})
}
