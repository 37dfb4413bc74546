package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthyol/backend/pkg/config"
)

type stubIngestor struct {
	mu       sync.Mutex
	cities   []string
	country  string
	added    int
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (s *stubIngestor) IngestCity(ctx context.Context, city, country string) (int, error) {
	return s.IngestCities(ctx, []string{city}, country)
}

func (s *stubIngestor) IngestCities(_ context.Context, cities []string, country string) (int, error) {
	s.mu.Lock()
	s.cities = cities
	s.country = country
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	return s.added, s.err
}

func testIngestDefaults() config.IngestConfig {
	return config.IngestConfig{
		DefaultCities:  "İstanbul,Ankara,İzmir,Antalya,Bursa",
		DefaultCountry: "Türkiye",
	}
}

func TestTriggerIngestion_UsesQueryParameters(t *testing.T) {
	ingestor := &stubIngestor{added: 7}
	handler := NewAdminIngestHandler(ingestor, testIngestDefaults(), nil, 0)

	req := httptest.NewRequest("POST", "/api/admin/ingest/hospitals?cities=Ankara,%20Bursa&country=Türkiye", nil)
	w := httptest.NewRecorder()

	handler.TriggerIngestion(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Added  int      `json:"added"`
		Cities []string `json:"cities"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 7, response.Added)
	assert.Equal(t, []string{"Ankara", "Bursa"}, response.Cities)
	assert.Equal(t, []string{"Ankara", "Bursa"}, ingestor.cities)
	assert.Equal(t, "Türkiye", ingestor.country)
}

func TestTriggerIngestion_FallsBackToDefaults(t *testing.T) {
	ingestor := &stubIngestor{added: 3}
	handler := NewAdminIngestHandler(ingestor, testIngestDefaults(), nil, 0)

	req := httptest.NewRequest("POST", "/api/admin/ingest/hospitals", nil)
	w := httptest.NewRecorder()

	handler.TriggerIngestion(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"İstanbul", "Ankara", "İzmir", "Antalya", "Bursa"}, ingestor.cities)
	assert.Equal(t, "Türkiye", ingestor.country)
}

func TestTriggerIngestion_ProviderFailureReturnsBadGateway(t *testing.T) {
	ingestor := &stubIngestor{err: fmt.Errorf("ingesting Ankara: quota exceeded")}
	handler := NewAdminIngestHandler(ingestor, testIngestDefaults(), nil, 0)

	req := httptest.NewRequest("POST", "/api/admin/ingest/hospitals?cities=Ankara", nil)
	w := httptest.NewRecorder()

	handler.TriggerIngestion(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "quota exceeded")
}

func TestTriggerIngestion_ConcurrentRunsConflict(t *testing.T) {
	ingestor := &stubIngestor{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	handler := NewAdminIngestHandler(ingestor, testIngestDefaults(), nil, 0)

	firstDone := make(chan *httptest.ResponseRecorder)
	go func() {
		w := httptest.NewRecorder()
		handler.TriggerIngestion(w, httptest.NewRequest("POST", "/api/admin/ingest/hospitals?cities=Ankara", nil))
		firstDone <- w
	}()

	<-ingestor.started

	// Second run while the first still holds the lock
	second := httptest.NewRecorder()
	handler.TriggerIngestion(second, httptest.NewRequest("POST", "/api/admin/ingest/hospitals?cities=Bursa", nil))
	assert.Equal(t, http.StatusConflict, second.Code)

	close(ingestor.release)
	first := <-firstDone
	assert.Equal(t, http.StatusOK, first.Code)
}

func TestTriggerIngestion_NoIngestorConfigured(t *testing.T) {
	handler := NewAdminIngestHandler(nil, testIngestDefaults(), nil, 0)

	w := httptest.NewRecorder()
	handler.TriggerIngestion(w, httptest.NewRequest("POST", "/api/admin/ingest/hospitals", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
