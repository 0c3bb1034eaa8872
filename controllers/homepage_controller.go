package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// GetHomepage renders the storefront homepage: enabled sections in position
// order, with product grids resolved to live products.
func GetHomepage(c *gin.Context) {
	var sections []models.HomepageSection
	if err := config.DB.Where("enabled = ?", true).
		Order("position ASC").
		Find(&sections).Error; err != nil {
		utils.LogError("Failed to fetch homepage sections: %v", err)
		utils.InternalServerError(c, "Failed to fetch homepage", nil)
		return
	}

	rendered := make([]gin.H, 0, len(sections))
	for _, s := range sections {
		block := gin.H{
			"id":       s.ID,
			"type":     s.Type,
			"position": s.Position,
		}
		switch s.Type {
		case models.SectionTypeHero, models.SectionTypeBanner:
			block["title"] = s.Title
			block["subtitle"] = s.Subtitle
			block["image_url"] = s.ImageURL
			block["link_url"] = s.LinkURL
		case models.SectionTypeProductGrid:
			block["title"] = s.Title
			block["products"] = resolveGridProducts(s.ProductIDs)
		}
		rendered = append(rendered, block)
	}

	utils.Success(c, "Homepage retrieved successfully", gin.H{"sections": rendered})
}

// resolveGridProducts expands a stored ID list into active products,
// silently dropping products that have since been deactivated.
func resolveGridProducts(productIDs string) []gin.H {
	var ids []uint
	for _, part := range strings.Split(productIDs, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err == nil && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		return []gin.H{}
	}

	var products []models.Product
	if err := config.DB.Where("id IN ? AND is_active = ?", ids, true).Find(&products).Error; err != nil {
		utils.LogError("Failed to resolve grid products: %v", err)
		return []gin.H{}
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Preserve the order the operator arranged
	resolved := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			resolved = append(resolved, productResponse(p))
		}
	}
	return resolved
}

// AdminListHomepageSections returns every section including disabled ones.
func AdminListHomepageSections(c *gin.Context) {
	var sections []models.HomepageSection
	if err := config.DB.Order("position ASC").Find(&sections).Error; err != nil {
		utils.LogError("Failed to fetch homepage sections: %v", err)
		utils.InternalServerError(c, "Failed to fetch sections", nil)
		return
	}
	utils.Success(c, "Sections retrieved successfully", gin.H{"sections": sections})
}

type sectionRequest struct {
	Type       string `json:"type" binding:"required"`
	Position   int    `json:"position"`
	Enabled    *bool  `json:"enabled"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ImageURL   string `json:"image_url"`
	LinkURL    string `json:"link_url"`
	ProductIDs string `json:"product_ids"`
}

// AdminCreateHomepageSection adds a homepage block.
func AdminCreateHomepageSection(c *gin.Context) {
	utils.LogInfo("AdminCreateHomepageSection called")

	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid section data", err.Error())
		return
	}
	if !models.ValidSectionType(req.Type) {
		utils.BadRequest(c, "Unknown section type", gin.H{
			"allowed": []string{models.SectionTypeHero, models.SectionTypeProductGrid, models.SectionTypeBanner},
		})
		return
	}

	section := models.HomepageSection{
		Type:       req.Type,
		Position:   req.Position,
		Enabled:    true,
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		ImageURL:   req.ImageURL,
		LinkURL:    req.LinkURL,
		ProductIDs: req.ProductIDs,
	}
	if req.Enabled != nil {
		section.Enabled = *req.Enabled
	}

	if err := config.DB.Create(&section).Error; err != nil {
		utils.LogError("Failed to create homepage section: %v", err)
		utils.InternalServerError(c, "Failed to create section", nil)
		return
	}
	utils.LogInfo("Created homepage section ID: %d", section.ID)

	utils.Created(c, "Section created successfully", gin.H{"section": section})
}

// AdminUpdateHomepageSection edits a homepage block. The type is immutable;
// delete and recreate to change it.
func AdminUpdateHomepageSection(c *gin.Context) {
	utils.LogInfo("AdminUpdateHomepageSection called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid section ID", nil)
		return
	}

	var section models.HomepageSection
	if err := config.DB.First(&section, uint(id)).Error; err != nil {
		utils.NotFound(c, "Section not found")
		return
	}

	var req struct {
		Position   *int    `json:"position"`
		Enabled    *bool   `json:"enabled"`
		Title      *string `json:"title"`
		Subtitle   *string `json:"subtitle"`
		ImageURL   *string `json:"image_url"`
		LinkURL    *string `json:"link_url"`
		ProductIDs *string `json:"product_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid section data", err.Error())
		return
	}

	if req.Position != nil {
		section.Position = *req.Position
	}
	if req.Enabled != nil {
		section.Enabled = *req.Enabled
	}
	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Subtitle != nil {
		section.Subtitle = *req.Subtitle
	}
	if req.ImageURL != nil {
		section.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		section.LinkURL = *req.LinkURL
	}
	if req.ProductIDs != nil {
		section.ProductIDs = *req.ProductIDs
	}

	if err := config.DB.Save(&section).Error; err != nil {
		utils.LogError("Failed to update homepage section ID: %d: %v", section.ID, err)
		utils.InternalServerError(c, "Failed to update section", nil)
		return
	}
	utils.LogInfo("Updated homepage section ID: %d", section.ID)

	utils.Success(c, "Section updated successfully", gin.H{"section": section})
}

// AdminDeleteHomepageSection removes a homepage block.
func AdminDeleteHomepageSection(c *gin.Context) {
	utils.LogInfo("AdminDeleteHomepageSection called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid section ID", nil)
		return
	}

	result := config.DB.Delete(&models.HomepageSection{}, uint(id))
	if result.Error != nil {
		utils.LogError("Failed to delete homepage section ID: %d: %v", id, result.Error)
		utils.InternalServerError(c, "Failed to delete section", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Section not found")
		return
	}
	utils.LogInfo("Deleted homepage section ID: %d", id)

	utils.Success(c, "Section deleted", gin.H{"section_id": uint(id)})
}

// AdminReorderHomepageSections applies a full position ordering in one
// transaction so the homepage never renders a half-applied arrangement.
func AdminReorderHomepageSections(c *gin.Context) {
	utils.LogInfo("AdminReorderHomepageSections called")

	var req struct {
		SectionIDs []uint `json:"section_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.SectionIDs) == 0 {
		utils.BadRequest(c, "section_ids is required", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to reorder sections", nil)
		return
	}

	for position, id := range req.SectionIDs {
		result := tx.Model(&models.HomepageSection{}).Where("id = ?", id).
			UpdateColumn("position", position)
		if result.Error != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to reorder sections", nil)
			return
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			utils.BadRequest(c, "Unknown section in ordering", gin.H{"section_id": id})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to reorder sections", nil)
		return
	}
	utils.LogInfo("Reordered %d homepage sections", len(req.SectionIDs))

	utils.Success(c, "Sections reordered", gin.H{"count": len(req.SectionIDs)})
}
