package controllers

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// CreateSampleAdmin seeds an operator account on first boot so the admin
// console is reachable. Credentials come from the environment; defaults are
// for local development only.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@threadkart.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123!"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:    email,
		Password: hash,
		Name:     "Store Admin",
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Seeded admin account: %s", email)
	return nil
}

// AdminLogin authenticates a store operator and issues an admin JWT.
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&admin).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(admin.Password, req.Password) {
		utils.LogError("Failed admin login attempt for: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !admin.IsActive {
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID)
	if err != nil {
		utils.LogError("Failed to generate admin token: %v", err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	config.DB.Model(&admin).UpdateColumn("last_login", time.Now())
	utils.LogInfo("Admin %d logged in", admin.ID)

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
		},
	})
}
