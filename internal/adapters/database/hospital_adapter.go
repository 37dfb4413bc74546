package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
	"github.com/healthyol/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthyol/backend/pkg/errors"
)

var hospitalColumns = []interface{}{
	"id", "name", "email", "address", "city", "country",
	"google_maps_url", "google_places_url", "phone", "website",
	"description", "logo_url", "image_urls", "average_rating", "review_count",
	"is_active", "is_featured", "is_verified", "created_at", "updated_at",
}

// HospitalAdapter implements HospitalRepository
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new hospital
func (a *HospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	query, args, err := a.db.Insert("hospitals").Rows(hospitalRecord(hospital)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create hospital", err)
	}

	return nil
}

// CreateBatch inserts all hospitals in one transaction. Either every row
// is persisted or none are.
func (a *HospitalAdapter) CreateBatch(ctx context.Context, hospitals []*entities.Hospital) error {
	if len(hospitals) == 0 {
		return nil
	}

	records := make([]interface{}, 0, len(hospitals))
	for _, hospital := range hospitals {
		records = append(records, hospitalRecord(hospital))
	}

	query, args, err := a.db.Insert("hospitals").Rows(records...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build batch insert query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return apperrors.NewInternalError("failed to batch insert hospitals", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit hospital batch", err)
	}

	return nil
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	query, args, err := a.db.Select(hospitalColumns...).
		From("hospitals").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	hospital, err := scanHospital(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}

	return hospital, nil
}

// Update updates a hospital
func (a *HospitalAdapter) Update(ctx context.Context, hospital *entities.Hospital) error {
	hospital.UpdatedAt = time.Now()

	record := hospitalRecord(hospital)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("hospitals").
		Set(record).
		Where(goqu.Ex{"id": hospital.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update hospital", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", hospital.ID))
	}

	return nil
}

// Delete deactivates a hospital (soft delete)
func (a *HospitalAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update("hospitals").
		Set(goqu.Record{"is_active": false, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete hospital", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}

	return nil
}

// List retrieves hospitals matching the filter, newest first
func (a *HospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	ds := a.db.Select(hospitalColumns...).From("hospitals")

	if filter.City != "" {
		ds = ds.Where(goqu.L("LOWER(city)").Eq(goqu.L("LOWER(?)", filter.City)))
	}
	if filter.Country != "" {
		ds = ds.Where(goqu.L("LOWER(country)").Eq(goqu.L("LOWER(?)", filter.Country)))
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospitals", err)
	}
	defer rows.Close()

	hospitals := []*entities.Hospital{}
	for rows.Next() {
		hospital, err := scanHospital(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, hospital)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hospitals", err)
	}

	return hospitals, nil
}

// ListMapsURLs returns every non-empty canonical maps URL
func (a *HospitalAdapter) ListMapsURLs(ctx context.Context) ([]string, error) {
	query, args, err := a.db.Select("google_maps_url").
		From("hospitals").
		Where(
			goqu.I("google_maps_url").IsNotNull(),
			goqu.I("google_maps_url").Neq(""),
		).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospital maps urls", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, apperrors.NewInternalError("failed to scan maps url", err)
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate maps urls", err)
	}

	return urls, nil
}

// ListNameCityPairs returns the (name, city) projection of all hospitals
func (a *HospitalAdapter) ListNameCityPairs(ctx context.Context) ([]entities.NameCity, error) {
	query, args, err := a.db.Select("name", "city").From("hospitals").ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospital name/city pairs", err)
	}
	defer rows.Close()

	var pairs []entities.NameCity
	for rows.Next() {
		var name string
		var city sql.NullString
		if err := rows.Scan(&name, &city); err != nil {
			return nil, apperrors.NewInternalError("failed to scan name/city pair", err)
		}
		pairs = append(pairs, entities.NameCity{Name: name, City: city.String})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate name/city pairs", err)
	}

	return pairs, nil
}

func hospitalRecord(hospital *entities.Hospital) goqu.Record {
	return goqu.Record{
		"id":                hospital.ID,
		"name":              hospital.Name,
		"email":             nullable(hospital.Email),
		"address":           nullable(hospital.Address),
		"city":              nullable(hospital.City),
		"country":           nullable(hospital.Country),
		"google_maps_url":   nullable(hospital.GoogleMapsURL),
		"google_places_url": nullable(hospital.GooglePlacesURL),
		"phone":             nullable(hospital.Phone),
		"website":           nullable(hospital.Website),
		"description":       nullable(hospital.Description),
		"logo_url":          nullable(hospital.LogoURL),
		"image_urls":        pq.Array(hospital.ImageURLs),
		"average_rating":    hospital.AverageRating,
		"review_count":      hospital.ReviewCount,
		"is_active":         hospital.IsActive,
		"is_featured":       hospital.IsFeatured,
		"is_verified":       hospital.IsVerified,
		"created_at":        hospital.CreatedAt,
		"updated_at":        hospital.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHospital(row rowScanner) (*entities.Hospital, error) {
	hospital := &entities.Hospital{}
	var email, address, city, country sql.NullString
	var mapsURL, placesURL, phone, website, description, logoURL sql.NullString

	err := row.Scan(
		&hospital.ID,
		&hospital.Name,
		&email,
		&address,
		&city,
		&country,
		&mapsURL,
		&placesURL,
		&phone,
		&website,
		&description,
		&logoURL,
		pq.Array(&hospital.ImageURLs),
		&hospital.AverageRating,
		&hospital.ReviewCount,
		&hospital.IsActive,
		&hospital.IsFeatured,
		&hospital.IsVerified,
		&hospital.CreatedAt,
		&hospital.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	hospital.Email = email.String
	hospital.Address = address.String
	hospital.City = city.String
	hospital.Country = country.String
	hospital.GoogleMapsURL = mapsURL.String
	hospital.GooglePlacesURL = placesURL.String
	hospital.Phone = phone.String
	hospital.Website = website.String
	hospital.Description = description.String
	hospital.LogoURL = logoURL.String

	return hospital, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
