package routes

import (
	"net/http"

	"github.com/healthyol/backend/internal/api/handlers"
	"github.com/healthyol/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler      *handlers.HospitalHandler
	healthServiceHandler *handlers.HealthServiceHandler
	adminIngestHandler   *handlers.AdminIngestHandler
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	healthServiceHandler *handlers.HealthServiceHandler,
	adminIngestHandler *handlers.AdminIngestHandler,
) *Router {
	return &Router{
		mux:                  http.NewServeMux(),
		hospitalHandler:      hospitalHandler,
		healthServiceHandler: healthServiceHandler,
		adminIngestHandler:   adminIngestHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hospital endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/hospitals/search", r.hospitalHandler.SearchHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("GET /api/hospitals/{id}/services", r.healthServiceHandler.ListHospitalServices)

	// Health service endpoints
	r.mux.HandleFunc("GET /api/services", r.healthServiceHandler.ListServices)
	r.mux.HandleFunc("GET /api/services/{id}", r.healthServiceHandler.GetService)

	// Admin ingestion endpoint (hydrate catalog from the places provider)
	if r.adminIngestHandler != nil {
		r.mux.HandleFunc("POST /api/admin/ingest/hospitals", r.adminIngestHandler.TriggerIngestion)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// CORS wraps everything so headers are set even on errors
	handler = middleware.CORSMiddleware(handler)

	return handler
}
