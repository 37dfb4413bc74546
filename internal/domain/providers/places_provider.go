package providers

import (
	"context"
)

// PlacesProvider wraps a remote place text-search and details API.
// Implementations must not retry failed calls internally; ingestion is
// idempotent and callers re-invoke it instead.
type PlacesProvider interface {
	// SearchPlaceIDs issues a text search and follows continuation tokens
	// until the result set is exhausted, returning distinct place ids in
	// first-seen order.
	SearchPlaceIDs(ctx context.Context, query string) ([]string, error)

	// GetDetails fetches full details for one place id. Returns nil when
	// the provider has no result for the id.
	GetDetails(ctx context.Context, placeID string) (*PlaceDetails, error)

	// BuildPhotoURL constructs a photo URL without a network call.
	// maxWidth <= 0 falls back to the provider default.
	BuildPhotoURL(photoRef string, maxWidth int) string

	// BuildMapsURL constructs the canonical maps link for a place id. The
	// same URL doubles as the primary deduplication key.
	BuildMapsURL(placeID string) string
}

// PlaceDetails is the transient result of a details lookup
type PlaceDetails struct {
	PlaceID                  string             `json:"place_id"`
	Name                     string             `json:"name,omitempty"`
	FormattedAddress         string             `json:"formatted_address,omitempty"`
	Location                 *GeoPoint          `json:"location,omitempty"`
	InternationalPhoneNumber string             `json:"international_phone_number,omitempty"`
	FormattedPhoneNumber     string             `json:"formatted_phone_number,omitempty"`
	Website                  string             `json:"website,omitempty"`
	Rating                   float64            `json:"rating,omitempty"`
	UserRatingsTotal         int                `json:"user_ratings_total,omitempty"`
	AddressComponents        []AddressComponent `json:"address_components,omitempty"`
	Photos                   []PlacePhoto       `json:"photos,omitempty"`
}

// GeoPoint represents geographical coordinates
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddressComponent is one structured component of a place address
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name,omitempty"`
	Types     []string `json:"types"`
}

// PlacePhoto is an opaque photo reference with provider-reported dimensions
type PlacePhoto struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}
