package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
	"github.com/healthyol/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthyol/backend/pkg/errors"
)

// HealthServiceAdapter implements HealthServiceRepository
type HealthServiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHealthServiceAdapter creates a new health service adapter
func NewHealthServiceAdapter(client *postgres.Client) repositories.HealthServiceRepository {
	return &HealthServiceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new health service
func (a *HealthServiceAdapter) Create(ctx context.Context, service *entities.HealthService) error {
	record := goqu.Record{
		"id":          service.ID,
		"name":        service.Name,
		"description": nullable(service.Description),
		"icon_key":    nullable(service.IconKey),
		"category":    nullable(service.Category),
		"is_active":   service.IsActive,
		"created_at":  service.CreatedAt,
	}

	query, args, err := a.db.Insert("health_services").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create health service", err)
	}

	return nil
}

// GetByID retrieves a health service by ID
func (a *HealthServiceAdapter) GetByID(ctx context.Context, id string) (*entities.HealthService, error) {
	return a.getByField(ctx, "id", id)
}

// GetByName retrieves a health service by exact name
func (a *HealthServiceAdapter) GetByName(ctx context.Context, name string) (*entities.HealthService, error) {
	return a.getByField(ctx, "name", name)
}

func (a *HealthServiceAdapter) getByField(ctx context.Context, field, value string) (*entities.HealthService, error) {
	query, args, err := a.db.Select(
		"id", "name", "description", "icon_key", "category", "is_active", "created_at",
	).From("health_services").
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	service, err := scanHealthService(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("health service with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get health service", err)
	}

	return service, nil
}

// List retrieves all health services ordered by name
func (a *HealthServiceAdapter) List(ctx context.Context) ([]*entities.HealthService, error) {
	query, args, err := a.db.Select(
		"id", "name", "description", "icon_key", "category", "is_active", "created_at",
	).From("health_services").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list health services", err)
	}
	defer rows.Close()

	services := []*entities.HealthService{}
	for rows.Next() {
		service, err := scanHealthService(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan health service", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate health services", err)
	}

	return services, nil
}

// ListNames returns the names of all existing health services
func (a *HealthServiceAdapter) ListNames(ctx context.Context) ([]string, error) {
	query, args, err := a.db.Select("name").From("health_services").ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list health service names", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan health service name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate health service names", err)
	}

	return names, nil
}

func scanHealthService(row rowScanner) (*entities.HealthService, error) {
	service := &entities.HealthService{}
	var description, iconKey, category sql.NullString

	err := row.Scan(
		&service.ID,
		&service.Name,
		&description,
		&iconKey,
		&category,
		&service.IsActive,
		&service.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.Description = description.String
	service.IconKey = iconKey.String
	service.Category = category.String

	return service, nil
}

// HospitalServiceLinkAdapter implements HospitalServiceLinkRepository
type HospitalServiceLinkAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalServiceLinkAdapter creates a new hospital service link adapter
func NewHospitalServiceLinkAdapter(client *postgres.Client) repositories.HospitalServiceLinkRepository {
	return &HospitalServiceLinkAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new hospital to health service link
func (a *HospitalServiceLinkAdapter) Create(ctx context.Context, link *entities.HospitalHealthService) error {
	record := goqu.Record{
		"id":                link.ID,
		"hospital_id":       link.HospitalID,
		"health_service_id": link.HealthServiceID,
		"description":       nullable(link.Description),
		"is_available":      link.IsAvailable,
		"created_at":        link.CreatedAt,
	}

	query, args, err := a.db.Insert("hospital_health_services").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create hospital service link", err)
	}

	return nil
}

// ListPairs returns the (hospital, service) id pairs of all links
func (a *HospitalServiceLinkAdapter) ListPairs(ctx context.Context) ([]repositories.HospitalServicePair, error) {
	query, args, err := a.db.Select("hospital_id", "health_service_id").
		From("hospital_health_services").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospital service pairs", err)
	}
	defer rows.Close()

	var pairs []repositories.HospitalServicePair
	for rows.Next() {
		var pair repositories.HospitalServicePair
		if err := rows.Scan(&pair.HospitalID, &pair.HealthServiceID); err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital service pair", err)
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hospital service pairs", err)
	}

	return pairs, nil
}

// ListByHospital retrieves all links for one hospital
func (a *HospitalServiceLinkAdapter) ListByHospital(ctx context.Context, hospitalID string) ([]*entities.HospitalHealthService, error) {
	query, args, err := a.db.Select(
		"id", "hospital_id", "health_service_id", "description", "is_available", "created_at",
	).From("hospital_health_services").
		Where(goqu.Ex{"hospital_id": hospitalID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospital service links", err)
	}
	defer rows.Close()

	links := []*entities.HospitalHealthService{}
	for rows.Next() {
		link := &entities.HospitalHealthService{}
		var description sql.NullString

		err := rows.Scan(
			&link.ID,
			&link.HospitalID,
			&link.HealthServiceID,
			&description,
			&link.IsAvailable,
			&link.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital service link", err)
		}

		link.Description = description.String
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hospital service links", err)
	}

	return links, nil
}
