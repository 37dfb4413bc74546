package repositories

import (
	"context"

	"github.com/healthyol/backend/internal/domain/entities"
)

// HospitalRepository defines the catalog store operations for hospitals
type HospitalRepository interface {
	// Create creates a single hospital
	Create(ctx context.Context, hospital *entities.Hospital) error

	// CreateBatch inserts all hospitals in one transaction
	CreateBatch(ctx context.Context, hospitals []*entities.Hospital) error

	// GetByID retrieves a hospital by ID
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// Update updates a hospital
	Update(ctx context.Context, hospital *entities.Hospital) error

	// Delete deletes a hospital (soft delete)
	Delete(ctx context.Context, id string) error

	// List retrieves hospitals with filters
	List(ctx context.Context, filter HospitalFilter) ([]*entities.Hospital, error)

	// ListMapsURLs returns every non-empty canonical maps URL
	ListMapsURLs(ctx context.Context) ([]string, error)

	// ListNameCityPairs returns the (name, city) projection of all hospitals
	ListNameCityPairs(ctx context.Context) ([]entities.NameCity, error)
}

// HospitalFilter defines filters for listing hospitals
type HospitalFilter struct {
	City     string
	Country  string
	IsActive *bool
	Limit    int
	Offset   int
}

// HospitalSearchRepository defines full-text hospital search operations
// (e.g. Typesense)
type HospitalSearchRepository interface {
	// InitSchema ensures the search collection exists
	InitSchema(ctx context.Context) error

	// Index indexes a hospital
	Index(ctx context.Context, hospital *entities.Hospital) error

	// Delete removes a hospital from the index
	Delete(ctx context.Context, id string) error

	// Search searches hospitals
	Search(ctx context.Context, params HospitalSearchParams) ([]*entities.Hospital, error)
}

// HospitalSearchParams defines parameters for hospital search
type HospitalSearchParams struct {
	Query  string
	City   string
	Limit  int
	Offset int
}
