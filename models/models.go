package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a store customer
type User struct {
	gorm.Model
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	Phone       string    `json:"phone"`
	IsBlocked   bool      `json:"is_blocked" gorm:"default:false"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// Admin represents a store operator
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
