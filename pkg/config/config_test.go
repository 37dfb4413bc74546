package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "hospital_directory", cfg.Database.Database)
	assert.Equal(t, 2200*time.Millisecond, cfg.Ingest.PageTokenDelay)
	assert.Equal(t, "Türkiye", cfg.Ingest.DefaultCountry)
	assert.Equal(t, "configs/service_keywords.json", cfg.Ingest.KeywordsPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("INGEST_PAGE_TOKEN_DELAY_MS", "50")
	t.Setenv("INGEST_DEFAULT_COUNTRY", "Deutschland")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50*time.Millisecond, cfg.Ingest.PageTokenDelay)
	assert.Equal(t, "Deutschland", cfg.Ingest.DefaultCountry)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "hospitals",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=hospitals sslmode=disable",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}

func TestSplitCities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "Ankara,Bursa", []string{"Ankara", "Bursa"}},
		{"whitespace trimmed", " Ankara , Bursa ", []string{"Ankara", "Bursa"}},
		{"empty entries dropped", "Ankara,,Bursa,", []string{"Ankara", "Bursa"}},
		{"all empty", " , ,", []string{}},
		{"empty string", "", []string{}},
		{"unicode names", "İstanbul,İzmir", []string{"İstanbul", "İzmir"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCities(tt.input))
		})
	}
}

func TestDefaultCityList(t *testing.T) {
	cfg := IngestConfig{DefaultCities: "İstanbul,Ankara,İzmir,Antalya,Bursa"}
	assert.Equal(t, []string{"İstanbul", "Ankara", "İzmir", "Antalya", "Bursa"}, cfg.DefaultCityList())
}
