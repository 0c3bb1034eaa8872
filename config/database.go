package config

import (
	"fmt"

	"github.com/prabin-sth/ThreadKart/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and migrates the schema.
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateDB(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateDB runs schema migration on the given handle. Split out from InitDB
// so tests can migrate an in-memory database.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Product{},
		&models.WaitlistEntry{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.Settings{},
		&models.HomepageSection{},
	)
}
