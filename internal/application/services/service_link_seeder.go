package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
	"github.com/healthyol/backend/pkg/textutil"
)

// KeywordGroup maps a set of keywords to a target health service. Hospitals
// whose name or description contains any keyword (accent- and
// case-insensitively) are linked to that service.
type KeywordGroup struct {
	Group    string   `json:"group"`
	Service  string   `json:"service"`
	Keywords []string `json:"keywords"`
}

// LoadKeywordGroups reads keyword group configuration from a JSON file
func LoadKeywordGroups(path string) ([]KeywordGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword groups: %w", err)
	}

	var groups []KeywordGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse keyword groups: %w", err)
	}

	return groups, nil
}

// ServiceLinkSeeder links hospitals to health services based on keyword
// matches against hospital names and descriptions
type ServiceLinkSeeder struct {
	hospitalRepo repositories.HospitalRepository
	serviceRepo  repositories.HealthServiceRepository
	linkRepo     repositories.HospitalServiceLinkRepository
	groups       []KeywordGroup
}

// NewServiceLinkSeeder creates a new service link seeder
func NewServiceLinkSeeder(
	hospitalRepo repositories.HospitalRepository,
	serviceRepo repositories.HealthServiceRepository,
	linkRepo repositories.HospitalServiceLinkRepository,
	groups []KeywordGroup,
) *ServiceLinkSeeder {
	return &ServiceLinkSeeder{
		hospitalRepo: hospitalRepo,
		serviceRepo:  serviceRepo,
		linkRepo:     linkRepo,
		groups:       groups,
	}
}

// LinkAll scans every hospital against every keyword group and creates the
// missing hospital-to-service links. Existing links are never duplicated.
// Returns the number of links created.
func (s *ServiceLinkSeeder) LinkAll(ctx context.Context) (int, error) {
	servicesByName := map[string]*entities.HealthService{}
	allServices, err := s.serviceRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load health services: %w", err)
	}
	for _, svc := range allServices {
		servicesByName[svc.Name] = svc
	}

	hospitals, err := s.hospitalRepo.List(ctx, repositories.HospitalFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to load hospitals: %w", err)
	}

	existing, err := s.linkRepo.ListPairs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing links: %w", err)
	}
	linked := make(map[string]struct{}, len(existing))
	for _, pair := range existing {
		linked[pair.HospitalID+"|"+pair.HealthServiceID] = struct{}{}
	}

	created := 0
	for _, hospital := range hospitals {
		haystack := textutil.Fold(hospital.Name + " " + hospital.Description)

		for _, group := range s.groups {
			service, ok := servicesByName[group.Service]
			if !ok {
				continue
			}
			if !matchesGroup(haystack, group) {
				continue
			}

			key := hospital.ID + "|" + service.ID
			if _, ok := linked[key]; ok {
				continue
			}

			link := &entities.HospitalHealthService{
				ID:              uuid.New().String(),
				HospitalID:      hospital.ID,
				HealthServiceID: service.ID,
				Description:     fmt.Sprintf("Available at %s", hospital.Name),
				IsAvailable:     true,
				CreatedAt:       time.Now(),
			}
			if err := s.linkRepo.Create(ctx, link); err != nil {
				return created, fmt.Errorf("failed to link hospital %s to service %s: %w", hospital.ID, service.ID, err)
			}

			linked[key] = struct{}{}
			created++
		}
	}

	return created, nil
}

func matchesGroup(haystack string, group KeywordGroup) bool {
	for _, keyword := range group.Keywords {
		folded := textutil.Fold(keyword)
		if folded == "" {
			continue
		}
		if strings.Contains(haystack, folded) {
			return true
		}
	}
	return false
}
