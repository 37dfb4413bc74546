package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
	tsclient "github.com/healthyol/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "hospitals"

// TypesenseAdapter implements hospital search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements HospitalSearchRepository
var _ repositories.HospitalSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "city", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "country", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "rating", Type: "float"},
			{Name: "review_count", Type: "int32"},
			{Name: "is_active", Type: "bool"},
			{Name: "is_verified", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a hospital
func (a *TypesenseAdapter) Index(ctx context.Context, hospital *entities.Hospital) error {
	document := map[string]interface{}{
		"id":           hospital.ID,
		"name":         hospital.Name,
		"city":         hospital.City,
		"country":      hospital.Country,
		"rating":       hospital.AverageRating,
		"review_count": hospital.ReviewCount,
		"is_active":    hospital.IsActive,
		"is_verified":  hospital.IsVerified,
		"created_at":   hospital.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index hospital: %w", err)
	}

	return nil
}

// Delete removes a hospital from index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete hospital from index: %w", err)
	}
	return nil
}

// Search searches hospitals by name, optionally narrowed to a city
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.HospitalSearchParams) ([]*entities.Hospital, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}

	filter := "is_active:=true"
	if params.City != "" {
		filter = fmt.Sprintf("%s && city:=%s", filter, params.City)
	}

	query := params.Query
	if query == "" {
		query = "*"
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name"),
		FilterBy: pointer.String(filter),
		Page:     pointer.Int(params.Offset/params.Limit + 1),
		PerPage:  pointer.Int(params.Limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search hospitals: %w", err)
	}

	hospitals := []*entities.Hospital{}
	if result.Hits == nil {
		return hospitals, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense returns map[string]interface{}; only the indexed
		// fields are reconstructed here. Callers needing the full record
		// fetch it from the database by id.
		hospital := &entities.Hospital{
			ID:   doc["id"].(string),
			Name: doc["name"].(string),
		}

		if val, ok := doc["city"].(string); ok {
			hospital.City = val
		}
		if val, ok := doc["country"].(string); ok {
			hospital.Country = val
		}
		if val, ok := doc["rating"].(float64); ok {
			hospital.AverageRating = val
		}
		if val, ok := doc["review_count"].(float64); ok {
			hospital.ReviewCount = int(val)
		}
		if val, ok := doc["is_active"].(bool); ok {
			hospital.IsActive = val
		}
		if val, ok := doc["is_verified"].(bool); ok {
			hospital.IsVerified = val
		}

		hospitals = append(hospitals, hospital)
	}

	return hospitals, nil
}
