package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product represents an item in the catalog. Products referenced by orders
// are never hard-deleted, only deactivated.
type Product struct {
	gorm.Model
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" gorm:"check:price >= 0"`
	Stock       int     `json:"stock" gorm:"check:stock >= 0"`
	Images      string  `json:"images"` // comma separated URLs
	Sizes       string  `json:"sizes"`  // comma separated size labels
	ShowInShop  bool    `json:"show_in_shop" gorm:"default:true"`
	HeroVisible bool    `json:"hero_visible" gorm:"default:false"`
	Featured    bool    `json:"featured" gorm:"default:false"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`

	WaitlistCount int             `json:"waitlist_count" gorm:"default:0"`
	Waitlist      []WaitlistEntry `json:"waitlist,omitempty" gorm:"foreignKey:ProductID"`
}

// WaitlistEntry records interest in a product that is currently out of stock.
// Entries are cleared when the product is restocked.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `json:"product_id" gorm:"index"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageList splits the stored image field into individual URLs.
func (p *Product) ImageList() []string {
	if p.Images == "" {
		return nil
	}
	parts := strings.Split(p.Images, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
