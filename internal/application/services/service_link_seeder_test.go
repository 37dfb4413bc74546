package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
)

type fakeServiceRepo struct {
	services []*entities.HealthService
}

func (f *fakeServiceRepo) Create(_ context.Context, service *entities.HealthService) error {
	f.services = append(f.services, service)
	return nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*entities.HealthService, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("service %s not found", id)
}

func (f *fakeServiceRepo) GetByName(_ context.Context, name string) (*entities.HealthService, error) {
	for _, s := range f.services {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("service %s not found", name)
}

func (f *fakeServiceRepo) List(_ context.Context) ([]*entities.HealthService, error) {
	return f.services, nil
}

func (f *fakeServiceRepo) ListNames(_ context.Context) ([]string, error) {
	var names []string
	for _, s := range f.services {
		names = append(names, s.Name)
	}
	return names, nil
}

type fakeLinkRepo struct {
	links []*entities.HospitalHealthService
}

func (f *fakeLinkRepo) Create(_ context.Context, link *entities.HospitalHealthService) error {
	f.links = append(f.links, link)
	return nil
}

func (f *fakeLinkRepo) ListPairs(_ context.Context) ([]repositories.HospitalServicePair, error) {
	var pairs []repositories.HospitalServicePair
	for _, l := range f.links {
		pairs = append(pairs, repositories.HospitalServicePair{
			HospitalID:      l.HospitalID,
			HealthServiceID: l.HealthServiceID,
		})
	}
	return pairs, nil
}

func (f *fakeLinkRepo) ListByHospital(_ context.Context, hospitalID string) ([]*entities.HospitalHealthService, error) {
	var links []*entities.HospitalHealthService
	for _, l := range f.links {
		if l.HospitalID == hospitalID {
			links = append(links, l)
		}
	}
	return links, nil
}

func testKeywordGroups() []KeywordGroup {
	return []KeywordGroup{
		{Group: "goz", Service: "Ophthalmology", Keywords: []string{"göz", "goz", "eye"}},
		{Group: "dental", Service: "Dentistry", Keywords: []string{"diş", "dis", "dental"}},
		{Group: "kadin", Service: "Obstetrics & Gynecology", Keywords: []string{"kadın doğum", "kadin dogum"}},
	}
}

func TestLinkAll_MatchesKeywordsAccentInsensitively(t *testing.T) {
	hospitalRepo := &fakeHospitalRepo{
		hospitals: []*entities.Hospital{
			{ID: "h1", Name: "Dünyagöz Hastanesi"},
			{ID: "h2", Name: "Özel Diş Kliniği"},
			{ID: "h3", Name: "Genel Hastane", Description: "Kadın Doğum bölümü"},
			{ID: "h4", Name: "Unrelated Clinic"},
		},
	}
	serviceRepo := &fakeServiceRepo{
		services: []*entities.HealthService{
			{ID: "s1", Name: "Ophthalmology"},
			{ID: "s2", Name: "Dentistry"},
			{ID: "s3", Name: "Obstetrics & Gynecology"},
		},
	}
	linkRepo := &fakeLinkRepo{}

	seeder := NewServiceLinkSeeder(hospitalRepo, serviceRepo, linkRepo, testKeywordGroups())
	created, err := seeder.LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	byHospital := map[string]string{}
	for _, l := range linkRepo.links {
		byHospital[l.HospitalID] = l.HealthServiceID
		assert.True(t, l.IsAvailable)
		assert.NotEmpty(t, l.ID)
	}
	assert.Equal(t, "s1", byHospital["h1"])
	assert.Equal(t, "s2", byHospital["h2"])
	assert.Equal(t, "s3", byHospital["h3"])
	assert.NotContains(t, byHospital, "h4")
}

func TestLinkAll_SkipsExistingLinks(t *testing.T) {
	hospitalRepo := &fakeHospitalRepo{
		hospitals: []*entities.Hospital{{ID: "h1", Name: "Göz Merkezi"}},
	}
	serviceRepo := &fakeServiceRepo{
		services: []*entities.HealthService{{ID: "s1", Name: "Ophthalmology"}},
	}
	linkRepo := &fakeLinkRepo{
		links: []*entities.HospitalHealthService{
			{ID: "l1", HospitalID: "h1", HealthServiceID: "s1"},
		},
	}

	seeder := NewServiceLinkSeeder(hospitalRepo, serviceRepo, linkRepo, testKeywordGroups())
	created, err := seeder.LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, linkRepo.links, 1)
}

func TestLinkAll_IgnoresGroupsWithoutService(t *testing.T) {
	hospitalRepo := &fakeHospitalRepo{
		hospitals: []*entities.Hospital{{ID: "h1", Name: "Dental Center"}},
	}
	serviceRepo := &fakeServiceRepo{} // no services seeded
	linkRepo := &fakeLinkRepo{}

	seeder := NewServiceLinkSeeder(hospitalRepo, serviceRepo, linkRepo, testKeywordGroups())
	created, err := seeder.LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestLinkAll_LinkDescriptionNamesHospital(t *testing.T) {
	hospitalRepo := &fakeHospitalRepo{
		hospitals: []*entities.Hospital{{ID: "h1", Name: "Dental Center"}},
	}
	serviceRepo := &fakeServiceRepo{
		services: []*entities.HealthService{{ID: "s2", Name: "Dentistry"}},
	}
	linkRepo := &fakeLinkRepo{}

	seeder := NewServiceLinkSeeder(hospitalRepo, serviceRepo, linkRepo, testKeywordGroups())
	_, err := seeder.LinkAll(context.Background())
	require.NoError(t, err)

	require.Len(t, linkRepo.links, 1)
	assert.Equal(t, "Available at Dental Center", linkRepo.links[0].Description)
}

func TestLoadKeywordGroups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.json")
	payload := `[{"group":"goz","service":"Ophthalmology","keywords":["göz","eye"]}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	groups, err := LoadKeywordGroups(path)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "goz", groups[0].Group)
	assert.Equal(t, "Ophthalmology", groups[0].Service)
	assert.Equal(t, []string{"göz", "eye"}, groups[0].Keywords)
}

func TestLoadKeywordGroups_MissingFile(t *testing.T) {
	_, err := LoadKeywordGroups(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
