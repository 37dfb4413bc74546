package services

import (
	"context"
	"log"

	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
)

// HospitalService handles business logic for hospitals
type HospitalService struct {
	repo       repositories.HospitalRepository
	searchRepo repositories.HospitalSearchRepository
}

// NewHospitalService creates a new hospital service
func NewHospitalService(repo repositories.HospitalRepository, searchRepo repositories.HospitalSearchRepository) *HospitalService {
	return &HospitalService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create creates a new hospital and indexes it
func (s *HospitalService) Create(ctx context.Context, hospital *entities.Hospital) error {
	if err := s.repo.Create(ctx, hospital); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, hospital); err != nil {
			// Log error but don't fail the request (eventual consistency)
			log.Printf("Warning: Failed to index hospital %s: %v", hospital.ID, err)
		}
	}

	return nil
}

// GetByID retrieves a hospital by ID
func (s *HospitalService) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a hospital and refreshes its index entry
func (s *HospitalService) Update(ctx context.Context, hospital *entities.Hospital) error {
	if err := s.repo.Update(ctx, hospital); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, hospital); err != nil {
			log.Printf("Warning: Failed to update hospital index %s: %v", hospital.ID, err)
		}
	}

	return nil
}

// Delete deactivates a hospital and removes it from the index
func (s *HospitalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Printf("Warning: Failed to delete hospital from index %s: %v", id, err)
		}
	}

	return nil
}

// List retrieves hospitals matching the filter
func (s *HospitalService) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	return s.repo.List(ctx, filter)
}

// Search searches hospitals via the search engine when available, falling
// back to a database list
func (s *HospitalService) Search(ctx context.Context, params repositories.HospitalSearchParams) ([]*entities.Hospital, error) {
	if s.searchRepo != nil {
		return s.searchRepo.Search(ctx, params)
	}

	active := true
	return s.repo.List(ctx, repositories.HospitalFilter{
		City:     params.City,
		IsActive: &active,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
}
