package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

type productRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
	Images      string  `json:"images"`
	Sizes       string  `json:"sizes"`
	ShowInShop  *bool   `json:"show_in_shop"`
	HeroVisible *bool   `json:"hero_visible"`
	Featured    *bool   `json:"featured"`
}

// AdminListProducts returns the full catalog including hidden and
// deactivated products.
func AdminListProducts(c *gin.Context) {
	var products []models.Product
	if err := config.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	utils.Success(c, "Products retrieved successfully", gin.H{"products": products})
}

// AdminCreateProduct adds a product to the catalog.
func AdminCreateProduct(c *gin.Context) {
	utils.LogInfo("AdminCreateProduct called")

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid product data", err.Error())
		return
	}
	if req.Price < 0 || req.Stock < 0 {
		utils.BadRequest(c, "Price and stock cannot be negative", nil)
		return
	}

	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Sizes:       req.Sizes,
		ShowInShop:  true,
		IsActive:    true,
	}
	if req.ShowInShop != nil {
		product.ShowInShop = *req.ShowInShop
	}
	if req.HeroVisible != nil {
		product.HeroVisible = *req.HeroVisible
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}
	utils.LogInfo("Created product ID: %d", product.ID)

	utils.Created(c, "Product created successfully", gin.H{"product": product})
}

// AdminUpdateProduct edits catalog fields. Stock is managed separately
// through the restock endpoint so the waitlist side effects stay in one
// place.
func AdminUpdateProduct(c *gin.Context) {
	utils.LogInfo("AdminUpdateProduct called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, uint(id)).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Images      *string  `json:"images"`
		Sizes       *string  `json:"sizes"`
		ShowInShop  *bool    `json:"show_in_shop"`
		HeroVisible *bool    `json:"hero_visible"`
		Featured    *bool    `json:"featured"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid product data", err.Error())
		return
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.BadRequest(c, "Price cannot be negative", nil)
			return
		}
		product.Price = *req.Price
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Sizes != nil {
		product.Sizes = *req.Sizes
	}
	if req.ShowInShop != nil {
		product.ShowInShop = *req.ShowInShop
	}
	if req.HeroVisible != nil {
		product.HeroVisible = *req.HeroVisible
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}
	utils.LogInfo("Updated product ID: %d", product.ID)

	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// AdminRestockProduct sets a product's stock to an absolute value. Restocking
// above zero clears the waitlist.
func AdminRestockProduct(c *gin.Context) {
	utils.LogInfo("AdminRestockProduct called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Stock is required", err.Error())
		return
	}
	if *req.Stock < 0 {
		utils.BadRequest(c, "Stock cannot be negative", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to update stock", nil)
		return
	}

	if err := utils.Restock(tx, uint(id), *req.Stock); err != nil {
		tx.Rollback()
		utils.LogError("Failed to restock product ID: %d: %v", id, err)
		utils.NotFound(c, "Product not found")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to update stock", nil)
		return
	}
	utils.LogInfo("Restocked product ID: %d to %d units", id, *req.Stock)

	utils.Success(c, "Stock updated successfully", gin.H{
		"product_id": uint(id),
		"stock":      *req.Stock,
	})
}

// AdminProductWaitlist shows who is waiting for a product.
func AdminProductWaitlist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Waitlist").First(&product, uint(id)).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Waitlist retrieved successfully", gin.H{
		"product_id":     product.ID,
		"waitlist_count": product.WaitlistCount,
		"waitlist":       product.Waitlist,
	})
}

// AdminDeactivateProduct soft-removes a product from sale. Products are
// never hard-deleted because order items reference them.
func AdminDeactivateProduct(c *gin.Context) {
	utils.LogInfo("AdminDeactivateProduct called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	result := config.DB.Model(&models.Product{}).Where("id = ?", uint(id)).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		utils.LogError("Failed to deactivate product ID: %d: %v", id, result.Error)
		utils.InternalServerError(c, "Failed to deactivate product", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Product not found")
		return
	}
	utils.LogInfo("Deactivated product ID: %d", id)

	utils.Success(c, "Product deactivated", gin.H{"product_id": uint(id)})
}
