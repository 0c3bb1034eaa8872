package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// RegisterUser creates a customer account.
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")

	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid registration data", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Conflict(c, "Email already registered", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Phone:    strings.TrimSpace(req.Phone),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}
	utils.LogInfo("Registered user ID: %d", user.ID)

	utils.Created(c, "Account created successfully", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// LoginUser authenticates a customer and issues a JWT.
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		utils.LogError("Failed login attempt for user ID: %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	token, err := utils.GenerateUserToken(user.ID)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())
	utils.LogInfo("User %d logged in", user.ID)

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
