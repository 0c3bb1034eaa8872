package models

import (
	"time"
)

// Homepage section types. Each section is a tagged union keyed by Type; only
// the payload fields relevant to its type are populated.
const (
	SectionTypeHero        = "hero"
	SectionTypeProductGrid = "product_grid"
	SectionTypeBanner      = "banner"
)

// HomepageSection is one block of the CMS-editable storefront homepage.
type HomepageSection struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Type     string `json:"type" gorm:"not null"`
	Position int    `json:"position" gorm:"index"`
	Enabled  bool   `json:"enabled" gorm:"default:true"`

	// hero / banner payload
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	LinkURL  string `json:"link_url,omitempty"`

	// product_grid payload
	ProductIDs string `json:"product_ids,omitempty"` // comma separated product IDs

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidSectionType reports whether t is a known section type.
func ValidSectionType(t string) bool {
	switch t {
	case SectionTypeHero, SectionTypeProductGrid, SectionTypeBanner:
		return true
	}
	return false
}
