package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/healthyol/backend/internal/adapters/cache"
	"github.com/healthyol/backend/internal/adapters/database"
	"github.com/healthyol/backend/internal/adapters/providers/places"
	"github.com/healthyol/backend/internal/adapters/search"
	"github.com/healthyol/backend/internal/api/handlers"
	"github.com/healthyol/backend/internal/api/routes"
	"github.com/healthyol/backend/internal/application/services"
	"github.com/healthyol/backend/internal/domain/providers"
	"github.com/healthyol/backend/internal/domain/repositories"
	"github.com/healthyol/backend/internal/infrastructure/clients/postgres"
	"github.com/healthyol/backend/internal/infrastructure/clients/redis"
	"github.com/healthyol/backend/internal/infrastructure/clients/typesense"
	"github.com/healthyol/backend/internal/infrastructure/observability"
	"github.com/healthyol/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("hospital-directory-api", cfg.Server.Env)

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	// Initialize adapters
	hospitalAdapter := database.NewHospitalAdapter(pgClient)
	healthServiceAdapter := database.NewHealthServiceAdapter(pgClient)
	serviceLinkAdapter := database.NewHospitalServiceLinkAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var searchRepo repositories.HospitalSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	// Initialize services
	hospitalService := services.NewHospitalService(hospitalAdapter, searchRepo)

	var ingestor services.HospitalIngestor
	if cfg.Google.PlacesAPIKey != "" {
		placesClient := places.NewGoogleClientWithOptions(
			cfg.Google.PlacesAPIKey,
			cacheProvider,
			"",
			nil,
			cfg.Ingest.PageTokenDelay,
		)
		ingestor = services.NewHospitalIngestionService(placesClient, hospitalAdapter, searchRepo)
		log.Println("Hospital ingestion enabled")
	} else {
		log.Println("GOOGLE_PLACES_API_KEY not set; hospital ingestion disabled")
	}

	// Initialize handlers
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	healthServiceHandler := handlers.NewHealthServiceHandler(healthServiceAdapter, serviceLinkAdapter)

	var adminIngestHandler *handlers.AdminIngestHandler
	if ingestor != nil {
		var rawRedis *redislib.Client
		if redisClient != nil {
			rawRedis = redisClient.Client()
		}
		adminIngestHandler = handlers.NewAdminIngestHandler(ingestor, cfg.Ingest, rawRedis, 0)
	}

	router := routes.NewRouter(hospitalHandler, healthServiceHandler, adminIngestHandler)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
