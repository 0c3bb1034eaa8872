package utils

import (
	"github.com/prabin-sth/ThreadKart/models"
	"gorm.io/gorm"
)

// ReserveStock performs the atomic conditional stock decrement for one line
// item: the stock check and the decrement are a single UPDATE guarded by
// stock >= quantity, so concurrent checkouts cannot drive stock negative.
// Returns the product after the decrement, or *InsufficientStockError when
// the guard failed. The caller must treat that as terminal and roll back its
// whole transaction.
func ReserveStock(tx *gorm.DB, productID uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, BadRequestError("quantity must be positive", nil)
	}

	result := tx.Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND stock >= ?", productID, true, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		stockErr := &InsufficientStockError{ProductID: productID}
		// Best effort title for the error message
		var product models.Product
		if err := tx.Select("title").First(&product, productID).Error; err == nil {
			stockErr.Title = product.Title
		}
		return nil, stockErr
	}

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// RestoreStock puts quantity units back, used when a pending order is
// cancelled before fulfilment.
func RestoreStock(tx *gorm.DB, productID uint, quantity int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}

// Restock sets a product's stock to an absolute value. When the product
// comes back in stock its waitlist is cleared: the waitlist is scoped to
// "currently out of stock", not to historical interest.
func Restock(tx *gorm.DB, productID uint, newStock int) error {
	if newStock < 0 {
		return BadRequestError("stock cannot be negative", nil)
	}

	result := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", newStock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if newStock > 0 {
		if err := tx.Where("product_id = ?", productID).Delete(&models.WaitlistEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			UpdateColumn("waitlist_count", 0).Error; err != nil {
			return err
		}
	}
	return nil
}
