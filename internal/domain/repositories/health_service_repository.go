package repositories

import (
	"context"

	"github.com/healthyol/backend/internal/domain/entities"
)

// HealthServiceRepository defines operations for health service categories
type HealthServiceRepository interface {
	// Create creates a new health service
	Create(ctx context.Context, service *entities.HealthService) error

	// GetByID retrieves a health service by ID
	GetByID(ctx context.Context, id string) (*entities.HealthService, error)

	// GetByName retrieves a health service by exact name
	GetByName(ctx context.Context, name string) (*entities.HealthService, error)

	// List retrieves all health services
	List(ctx context.Context) ([]*entities.HealthService, error)

	// ListNames returns the names of all existing health services
	ListNames(ctx context.Context) ([]string, error)
}

// HospitalServiceLinkRepository defines operations for hospital to health
// service links
type HospitalServiceLinkRepository interface {
	// Create creates a new link
	Create(ctx context.Context, link *entities.HospitalHealthService) error

	// ListPairs returns the (hospital, service) id pairs of all links
	ListPairs(ctx context.Context) ([]HospitalServicePair, error)

	// ListByHospital retrieves all links for one hospital
	ListByHospital(ctx context.Context, hospitalID string) ([]*entities.HospitalHealthService, error)
}

// HospitalServicePair identifies one hospital to service link
type HospitalServicePair struct {
	HospitalID      string
	HealthServiceID string
}
