package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// AdminListUsers lists customer accounts.
func AdminListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.User{})
	if c.Query("blocked") == "true" {
		query = query.Where("is_blocked = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	utils.Success(c, "Users retrieved successfully", gin.H{
		"users": users,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// AdminSetUserBlocked blocks or unblocks a customer. Blocked customers keep
// their data but cannot log in or act.
func AdminSetUserBlocked(c *gin.Context) {
	utils.LogInfo("AdminSetUserBlocked called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var req struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "blocked is required", err.Error())
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", uint(id)).
		UpdateColumn("is_blocked", *req.Blocked)
	if result.Error != nil {
		utils.LogError("Failed to update user ID: %d: %v", id, result.Error)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}
	utils.LogInfo("User ID: %d blocked=%t", id, *req.Blocked)

	utils.Success(c, "User updated", gin.H{
		"user_id": uint(id),
		"blocked": *req.Blocked,
	})
}
