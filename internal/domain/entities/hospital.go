package entities

import (
	"time"
)

// Hospital represents a catalog entry in the hospital directory
type Hospital struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email,omitempty" db:"email"`
	Address string `json:"address,omitempty" db:"address"`
	City    string `json:"city,omitempty" db:"city"`
	Country string `json:"country,omitempty" db:"country"`

	// GoogleMapsURL doubles as the canonical external reference and the
	// primary deduplication key. GooglePlacesURL carries the same value.
	GoogleMapsURL   string `json:"google_maps_url,omitempty" db:"google_maps_url"`
	GooglePlacesURL string `json:"google_places_url,omitempty" db:"google_places_url"`

	Phone       string   `json:"phone,omitempty" db:"phone"`
	Website     string   `json:"website,omitempty" db:"website"`
	Description string   `json:"description,omitempty" db:"description"`
	LogoURL     string   `json:"logo_url,omitempty" db:"logo_url"`
	ImageURLs   []string `json:"image_urls" db:"-"`

	AverageRating float64 `json:"average_rating" db:"average_rating"`
	ReviewCount   int     `json:"review_count" db:"review_count"`

	IsActive   bool      `json:"is_active" db:"is_active"`
	IsFeatured bool      `json:"is_featured" db:"is_featured"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NameCity is the (name, city) projection of a hospital used for
// duplicate detection
type NameCity struct {
	Name string
	City string
}
