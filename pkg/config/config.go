package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Google    GoogleConfig
	Ingest    IngestConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// GoogleConfig holds Google Places API configuration
type GoogleConfig struct {
	PlacesAPIKey string
}

// IngestConfig holds hospital ingestion defaults
type IngestConfig struct {
	DefaultCities  string
	DefaultCountry string
	// PageTokenDelay is how long to wait before a places continuation
	// token becomes usable. Google requires at least 2 seconds.
	PageTokenDelay time.Duration
	KeywordsPath   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "hospital_directory"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Google: GoogleConfig{
			PlacesAPIKey: getEnv("GOOGLE_PLACES_API_KEY", ""),
		},
		Ingest: IngestConfig{
			DefaultCities:  getEnv("INGEST_DEFAULT_CITIES", "İstanbul,Ankara,İzmir,Antalya,Bursa"),
			DefaultCountry: getEnv("INGEST_DEFAULT_COUNTRY", "Türkiye"),
			PageTokenDelay: time.Duration(getEnvAsInt("INGEST_PAGE_TOKEN_DELAY_MS", 2200)) * time.Millisecond,
			KeywordsPath:   getEnv("SERVICE_KEYWORDS_PATH", "configs/service_keywords.json"),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultCityList returns the configured default cities as a cleaned slice
func (c *IngestConfig) DefaultCityList() []string {
	return SplitCities(c.DefaultCities)
}

// SplitCities parses a comma-separated city list, trimming whitespace and
// dropping empty entries
func SplitCities(cities string) []string {
	parts := strings.Split(cities, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
