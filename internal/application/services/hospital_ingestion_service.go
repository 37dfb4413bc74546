package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/providers"
	"github.com/healthyol/backend/internal/domain/repositories"
)

const (
	maxHospitalPhotos = 3
	minPhotoWidth     = 600
	maxPhotoWidth     = 1600
)

// HospitalIngestor triggers hospital discovery runs
type HospitalIngestor interface {
	IngestCity(ctx context.Context, city, country string) (int, error)
	IngestCities(ctx context.Context, cities []string, country string) (int, error)
}

// HospitalIngestionService discovers hospitals through a places provider and
// persists the ones not already in the catalog
type HospitalIngestionService struct {
	places     providers.PlacesProvider
	repo       repositories.HospitalRepository
	searchRepo repositories.HospitalSearchRepository
}

// NewHospitalIngestionService creates a new hospital ingestion service.
// searchRepo may be nil; indexing is then skipped.
func NewHospitalIngestionService(
	places providers.PlacesProvider,
	repo repositories.HospitalRepository,
	searchRepo repositories.HospitalSearchRepository,
) *HospitalIngestionService {
	return &HospitalIngestionService{
		places:     places,
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// IngestCity discovers hospitals in one city and inserts the new ones in a
// single batch. Returns the number of hospitals added.
func (s *HospitalIngestionService) IngestCity(ctx context.Context, city, country string) (int, error) {
	query := fmt.Sprintf("hospitals in %s, %s", city, country)

	placeIDs, err := s.places.SearchPlaceIDs(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to search hospitals in %s: %w", city, err)
	}
	if len(placeIDs) == 0 {
		return 0, nil
	}

	index, err := s.loadDedupIndex(ctx)
	if err != nil {
		return 0, err
	}

	var hospitals []*entities.Hospital
	for _, placeID := range placeIDs {
		details, err := s.places.GetDetails(ctx, placeID)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch details for place %s: %w", placeID, err)
		}
		if details == nil || strings.TrimSpace(details.Name) == "" {
			continue
		}

		mapsURL := s.places.BuildMapsURL(placeID)
		resolvedCity, resolvedCountry := resolveCityCountry(details.AddressComponents)
		if resolvedCity == "" {
			resolvedCity = city
		}
		if resolvedCountry == "" {
			resolvedCountry = country
		}

		if index.IsDuplicate(mapsURL, details.Name, resolvedCity) {
			continue
		}

		hospital := s.buildHospital(details, mapsURL, resolvedCity, resolvedCountry)
		hospitals = append(hospitals, hospital)
		index.Add(mapsURL, details.Name, resolvedCity)
	}

	if len(hospitals) == 0 {
		return 0, nil
	}

	if err := s.repo.CreateBatch(ctx, hospitals); err != nil {
		return 0, err
	}

	if s.searchRepo != nil {
		for _, hospital := range hospitals {
			if err := s.searchRepo.Index(ctx, hospital); err != nil {
				log.Printf("Warning: Failed to index hospital %s: %v", hospital.ID, err)
			}
		}
	}

	return len(hospitals), nil
}

// IngestCities runs IngestCity sequentially over the given cities and sums
// the counts. The first failing city aborts the run.
func (s *HospitalIngestionService) IngestCities(ctx context.Context, cities []string, country string) (int, error) {
	total := 0
	for _, city := range cities {
		added, err := s.IngestCity(ctx, city, country)
		if err != nil {
			return total, fmt.Errorf("ingesting %s: %w", city, err)
		}
		total += added
	}
	return total, nil
}

func (s *HospitalIngestionService) buildHospital(
	details *providers.PlaceDetails,
	mapsURL, city, country string,
) *entities.Hospital {
	now := time.Now()

	phone := details.InternationalPhoneNumber
	if phone == "" {
		phone = details.FormattedPhoneNumber
	}

	var imageURLs []string
	for i, photo := range details.Photos {
		if i >= maxHospitalPhotos {
			break
		}
		imageURLs = append(imageURLs, s.places.BuildPhotoURL(photo.PhotoReference, clampPhotoWidth(photo.Width)))
	}

	return &entities.Hospital{
		ID:              uuid.New().String(),
		Name:            details.Name,
		Address:         details.FormattedAddress,
		City:            city,
		Country:         country,
		GoogleMapsURL:   mapsURL,
		GooglePlacesURL: mapsURL,
		Phone:           phone,
		Website:         details.Website,
		ImageURLs:       imageURLs,
		AverageRating:   details.Rating,
		ReviewCount:     details.UserRatingsTotal,
		IsActive:        true,
		IsVerified:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// resolveCityCountry extracts the city and country from place address
// components. City priority: locality, then administrative_area_level_2,
// then administrative_area_level_1. Empty strings mean not found.
func resolveCityCountry(components []providers.AddressComponent) (string, string) {
	var locality, adminTwo, adminOne, country string

	for _, comp := range components {
		for _, t := range comp.Types {
			switch t {
			case "locality":
				if locality == "" {
					locality = comp.LongName
				}
			case "administrative_area_level_2":
				if adminTwo == "" {
					adminTwo = comp.LongName
				}
			case "administrative_area_level_1":
				if adminOne == "" {
					adminOne = comp.LongName
				}
			case "country":
				if country == "" {
					country = comp.LongName
				}
			}
		}
	}

	city := locality
	if city == "" {
		city = adminTwo
	}
	if city == "" {
		city = adminOne
	}

	return city, country
}

func clampPhotoWidth(width int) int {
	if width < minPhotoWidth {
		return minPhotoWidth
	}
	if width > maxPhotoWidth {
		return maxPhotoWidth
	}
	return width
}

// dedupIndex tracks which hospitals already exist, by canonical maps URL and
// by case-insensitive name+city pair. It is cumulative: candidates accepted
// during a run are added so later cities cannot re-insert them.
type dedupIndex struct {
	urls       map[string]struct{}
	nameCities map[string]struct{}
}

func (s *HospitalIngestionService) loadDedupIndex(ctx context.Context) (*dedupIndex, error) {
	urls, err := s.repo.ListMapsURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing hospital urls: %w", err)
	}

	pairs, err := s.repo.ListNameCityPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing hospital names: %w", err)
	}

	index := &dedupIndex{
		urls:       make(map[string]struct{}, len(urls)),
		nameCities: make(map[string]struct{}, len(pairs)),
	}
	for _, u := range urls {
		index.urls[u] = struct{}{}
	}
	for _, p := range pairs {
		index.nameCities[nameCityKey(p.Name, p.City)] = struct{}{}
	}

	return index, nil
}

func (i *dedupIndex) IsDuplicate(mapsURL, name, city string) bool {
	if _, ok := i.urls[mapsURL]; ok {
		return true
	}
	_, ok := i.nameCities[nameCityKey(name, city)]
	return ok
}

func (i *dedupIndex) Add(mapsURL, name, city string) {
	i.urls[mapsURL] = struct{}{}
	i.nameCities[nameCityKey(name, city)] = struct{}{}
}

func nameCityKey(name, city string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(city)
}
