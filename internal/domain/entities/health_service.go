package entities

import (
	"time"
)

// HealthService is a top-level category of care offered by hospitals
type HealthService struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	IconKey     string    `json:"icon_key,omitempty" db:"icon_key"`
	Category    string    `json:"category,omitempty" db:"category"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// HospitalHealthService links a hospital to a health service category
type HospitalHealthService struct {
	ID              string    `json:"id" db:"id"`
	HospitalID      string    `json:"hospital_id" db:"hospital_id"`
	HealthServiceID string    `json:"health_service_id" db:"health_service_id"`
	Description     string    `json:"description,omitempty" db:"description"`
	IsAvailable     bool      `json:"is_available" db:"is_available"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
