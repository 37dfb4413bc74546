package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthyol/backend/internal/application/services"
	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
	apperrors "github.com/healthyol/backend/pkg/errors"
)

type stubHospitalRepo struct {
	hospitals map[string]*entities.Hospital
}

func (s *stubHospitalRepo) Create(_ context.Context, _ *entities.Hospital) error      { return nil }
func (s *stubHospitalRepo) CreateBatch(_ context.Context, _ []*entities.Hospital) error { return nil }
func (s *stubHospitalRepo) Update(_ context.Context, _ *entities.Hospital) error      { return nil }
func (s *stubHospitalRepo) Delete(_ context.Context, _ string) error                  { return nil }
func (s *stubHospitalRepo) ListMapsURLs(_ context.Context) ([]string, error)          { return nil, nil }
func (s *stubHospitalRepo) ListNameCityPairs(_ context.Context) ([]entities.NameCity, error) {
	return nil, nil
}

func (s *stubHospitalRepo) GetByID(_ context.Context, id string) (*entities.Hospital, error) {
	if h, ok := s.hospitals[id]; ok {
		return h, nil
	}
	return nil, apperrors.NewNotFoundError("hospital with id " + id + " not found")
}

func (s *stubHospitalRepo) List(_ context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	var out []*entities.Hospital
	for _, h := range s.hospitals {
		if filter.City != "" && h.City != filter.City {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func newHospitalHandler(repo *stubHospitalRepo) *HospitalHandler {
	return NewHospitalHandler(services.NewHospitalService(repo, nil))
}

func TestGetHospital(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: map[string]*entities.Hospital{
		"h1": {ID: "h1", Name: "Acme Hospital", City: "Ankara"},
	}}
	handler := newHospitalHandler(repo)

	req := httptest.NewRequest("GET", "/api/hospitals/h1", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.GetHospital(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var hospital entities.Hospital
	require.NoError(t, json.NewDecoder(w.Body).Decode(&hospital))
	assert.Equal(t, "Acme Hospital", hospital.Name)
}

func TestGetHospital_NotFound(t *testing.T) {
	handler := newHospitalHandler(&stubHospitalRepo{hospitals: map[string]*entities.Hospital{}})

	req := httptest.NewRequest("GET", "/api/hospitals/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.GetHospital(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHospital_MissingID(t *testing.T) {
	handler := newHospitalHandler(&stubHospitalRepo{})

	req := httptest.NewRequest("GET", "/api/hospitals/", nil)
	w := httptest.NewRecorder()

	handler.GetHospital(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListHospitals_FiltersByCity(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: map[string]*entities.Hospital{
		"h1": {ID: "h1", Name: "Ankara Hospital", City: "Ankara"},
		"h2": {ID: "h2", Name: "Bursa Hospital", City: "Bursa"},
	}}
	handler := newHospitalHandler(repo)

	req := httptest.NewRequest("GET", "/api/hospitals?city=Ankara", nil)
	w := httptest.NewRecorder()

	handler.ListHospitals(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Hospitals []entities.Hospital `json:"hospitals"`
		Count     int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Hospitals, 1)
	assert.Equal(t, "Ankara Hospital", response.Hospitals[0].Name)
}
