package handlers

import (
	"errors"
	"net/http"

	"github.com/healthyol/backend/internal/domain/repositories"
	apperrors "github.com/healthyol/backend/pkg/errors"
)

// HealthServiceHandler handles health-service HTTP requests
type HealthServiceHandler struct {
	serviceRepo repositories.HealthServiceRepository
	linkRepo    repositories.HospitalServiceLinkRepository
}

// NewHealthServiceHandler creates a new health service handler
func NewHealthServiceHandler(
	serviceRepo repositories.HealthServiceRepository,
	linkRepo repositories.HospitalServiceLinkRepository,
) *HealthServiceHandler {
	return &HealthServiceHandler{
		serviceRepo: serviceRepo,
		linkRepo:    linkRepo,
	}
}

// ListServices handles GET /api/services
func (h *HealthServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.serviceRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list health services")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": services,
		"count":    len(services),
	})
}

// GetService handles GET /api/services/{id}
func (h *HealthServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := r.PathValue("id")
	if serviceID == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	service, err := h.serviceRepo.GetByID(r.Context(), serviceID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeNotFound {
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, service)
}

// ListHospitalServices handles GET /api/hospitals/{id}/services
func (h *HealthServiceHandler) ListHospitalServices(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	links, err := h.linkRepo.ListByHospital(r.Context(), hospitalID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list hospital services")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": links,
		"count":    len(links),
	})
}
