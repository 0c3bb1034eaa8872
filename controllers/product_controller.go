package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
	"gorm.io/gorm"
)

func productResponse(p models.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price,
		"stock":       p.Stock,
		"in_stock":    p.Stock > 0,
		"images":      p.ImageList(),
		"sizes":       p.Sizes,
		"featured":    p.Featured,
	}
}

// ListProducts returns the public catalog: active products flagged for the
// shop, with optional category and search filters.
func ListProducts(c *gin.Context) {
	query := config.DB.Model(&models.Product{}).
		Where("is_active = ? AND show_in_shop = ?", true, true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	var products []models.Product
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	items := make([]gin.H, 0, len(products))
	for _, p := range products {
		items = append(items, productResponse(p))
	}

	utils.Success(c, "Products retrieved successfully", gin.H{
		"products": items,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetProduct returns one active product.
func GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Where("is_active = ?", true).First(&product, uint(id)).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{
		"product": productResponse(product),
	})
}

// JoinWaitlist records interest in an out-of-stock product. One entry per
// email per product; joining an in-stock product is rejected because the
// waitlist only exists while the product is out of stock.
func JoinWaitlist(c *gin.Context) {
	utils.LogInfo("JoinWaitlist called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "A valid email is required", err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to join waitlist", nil)
		return
	}

	var product models.Product
	if err := tx.Where("is_active = ?", true).First(&product, uint(id)).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Product not found")
		return
	}

	if product.Stock > 0 {
		tx.Rollback()
		utils.BadRequest(c, "Product is in stock", nil)
		return
	}

	var existing int64
	if err := tx.Model(&models.WaitlistEntry{}).
		Where("product_id = ? AND email = ?", product.ID, email).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to join waitlist", nil)
		return
	}
	if existing > 0 {
		tx.Rollback()
		utils.Success(c, "Already on the waitlist", gin.H{"product_id": product.ID})
		return
	}

	entry := models.WaitlistEntry{ProductID: product.ID, Email: email}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create waitlist entry: %v", err)
		utils.InternalServerError(c, "Failed to join waitlist", nil)
		return
	}
	if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
		UpdateColumn("waitlist_count", gorm.Expr("waitlist_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to join waitlist", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to join waitlist", nil)
		return
	}
	utils.LogInfo("Waitlist entry added for product ID: %d", product.ID)

	utils.Created(c, "Added to waitlist", gin.H{"product_id": product.ID})
}
