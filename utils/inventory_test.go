package utils

import (
	"testing"

	"github.com/prabin-sth/ThreadKart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveStockDecrements(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Linen Shirt", Price: 1500, Stock: 10, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	got, err := ReserveStock(db, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)
}

func TestReserveStockNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Wool Scarf", Price: 800, Stock: 2, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	_, err := ReserveStock(db, product.ID, 5)
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, "Wool Scarf", stockErr.Title)

	var after models.Product
	require.NoError(t, db.First(&after, product.ID).Error)
	assert.Equal(t, 2, after.Stock, "failed reservation must not touch stock")
}

func TestReserveStockLastUnit(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Denim Jacket", Price: 4500, Stock: 1, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	// Two checkouts race for the last unit: exactly one wins.
	first, err := ReserveStock(db, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Stock)

	_, err = ReserveStock(db, product.ID, 1)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	var after models.Product
	require.NoError(t, db.First(&after, product.ID).Error)
	assert.Equal(t, 0, after.Stock)
}

func TestReserveStockInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Retired Tee", Price: 500, Stock: 10, IsActive: false}
	require.NoError(t, db.Create(&product).Error)

	_, err := ReserveStock(db, product.ID, 1)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
}

func TestReserveStockRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Cap", Price: 300, Stock: 5, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	_, err := ReserveStock(db, product.ID, 0)
	assert.Error(t, err)
	_, err = ReserveStock(db, product.ID, -2)
	assert.Error(t, err)
}

func TestRestoreStock(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Hoodie", Price: 2200, Stock: 3, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, RestoreStock(db, product.ID, 2))

	var after models.Product
	require.NoError(t, db.First(&after, product.ID).Error)
	assert.Equal(t, 5, after.Stock)
}

func TestRestockClearsWaitlist(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Kurta", Price: 1800, Stock: 0, IsActive: true, WaitlistCount: 2}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.WaitlistEntry{ProductID: product.ID, Email: "a@example.com"}).Error)
	require.NoError(t, db.Create(&models.WaitlistEntry{ProductID: product.ID, Email: "b@example.com"}).Error)

	require.NoError(t, Restock(db, product.ID, 15))

	var after models.Product
	require.NoError(t, db.First(&after, product.ID).Error)
	assert.Equal(t, 15, after.Stock)
	assert.Equal(t, 0, after.WaitlistCount)

	var entries int64
	require.NoError(t, db.Model(&models.WaitlistEntry{}).Where("product_id = ?", product.ID).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestRestockToZeroKeepsWaitlist(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Title: "Saree", Price: 6500, Stock: 4, IsActive: true, WaitlistCount: 1}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.WaitlistEntry{ProductID: product.ID, Email: "c@example.com"}).Error)

	require.NoError(t, Restock(db, product.ID, 0))

	var entries int64
	require.NoError(t, db.Model(&models.WaitlistEntry{}).Where("product_id = ?", product.ID).Count(&entries).Error)
	assert.Equal(t, int64(1), entries)
}
