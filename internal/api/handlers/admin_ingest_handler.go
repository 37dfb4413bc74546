package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/healthyol/backend/internal/application/services"
	"github.com/healthyol/backend/pkg/config"
)

// AdminIngestHandler triggers hospital discovery runs
type AdminIngestHandler struct {
	ingestor       services.HospitalIngestor
	defaults       config.IngestConfig
	redisClient    *redislib.Client
	idempotencyTTL time.Duration

	// Ingestion runs share one dedup index snapshot per city; overlapping
	// runs could double-insert, so they are serialized here.
	mu sync.Mutex
}

// NewAdminIngestHandler creates a new admin ingest handler. redisClient may
// be nil; idempotency keys are then ignored.
func NewAdminIngestHandler(
	ingestor services.HospitalIngestor,
	defaults config.IngestConfig,
	redisClient *redislib.Client,
	idempotencyTTL time.Duration,
) *AdminIngestHandler {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &AdminIngestHandler{
		ingestor:       ingestor,
		defaults:       defaults,
		redisClient:    redisClient,
		idempotencyTTL: idempotencyTTL,
	}
}

// TriggerIngestion handles POST /api/admin/ingest/hospitals
func (h *AdminIngestHandler) TriggerIngestion(w http.ResponseWriter, r *http.Request) {
	if h.ingestor == nil {
		respondWithError(w, http.StatusServiceUnavailable, "hospital ingestion is not configured")
		return
	}

	cities := config.SplitCities(r.URL.Query().Get("cities"))
	if len(cities) == 0 {
		cities = h.defaults.DefaultCityList()
	}
	if len(cities) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one city is required")
		return
	}

	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		country = h.defaults.DefaultCountry
	}

	if duplicate, key := h.isDuplicate(r); duplicate {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":          "duplicate",
			"idempotency_key": key,
		})
		return
	}

	if !h.mu.TryLock() {
		respondWithError(w, http.StatusConflict, "an ingestion run is already in progress")
		return
	}
	defer h.mu.Unlock()

	added, err := h.ingestor.IngestCities(r.Context(), cities, country)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"added":  added,
		"cities": cities,
	})
}

func (h *AdminIngestHandler) isDuplicate(r *http.Request) (bool, string) {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key == "" || h.redisClient == nil {
		return false, ""
	}

	ok, err := h.redisClient.SetNX(r.Context(), "ingest:idempotency:"+key, "1", h.idempotencyTTL).Result()
	if err != nil {
		// Treat an unreachable cache as no guard rather than failing the run
		return false, ""
	}
	return !ok, key
}
