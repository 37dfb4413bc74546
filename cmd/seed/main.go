package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthyol/backend/internal/adapters/database"
	"github.com/healthyol/backend/internal/application/services"
	"github.com/healthyol/backend/internal/domain/entities"
	"github.com/healthyol/backend/internal/domain/repositories"
	"github.com/healthyol/backend/internal/infrastructure/clients/postgres"
	"github.com/healthyol/backend/pkg/config"
)

type category struct {
	name        string
	description string
	iconKey     string
}

// healthServiceCategories is the fixed catalog of top-level care categories
var healthServiceCategories = []category{
	{"Dentistry", "Dental and oral care", "tooth"},
	{"Ophthalmology", "Eye and vision care", "eye"},
	{"Oncology", "Cancer diagnosis and treatment", "radiation"},
	{"Fertility (IVF)", "IVF and infertility services", "dna"},
	{"Plastic & Reconstructive", "Aesthetic and reconstructive surgery", "wand-sparkles"},
	{"Orthopedics", "Musculoskeletal care", "bone"},
	{"Cardiology", "Heart and cardiovascular care", "heart"},
	{"Neurology", "Brain and nervous system care", "brain"},
	{"Bariatric Surgery", "Obesity and metabolic surgery", "scale"},
	{"ENT", "Ear, nose, throat care", "ear"},
	{"Dermatology", "Skin, hair and nail care", "sparkles"},
	{"Gastroenterology", "Digestive system care", "stethoscope"},
	{"Hepatology", "Liver disease care", "clipboard-list"},
	{"Endocrinology", "Hormones, diabetes, thyroid", "pill"},
	{"Rheumatology", "Autoimmune and joint diseases", "hand"},
	{"Nephrology", "Kidney and hypertension care", "kidney"},
	{"Urology", "Urinary tract and prostate care", "flask-round"},
	{"Pulmonology", "Lung and sleep disorders", "lungs"},
	{"Radiology", "Imaging and interventional radiology", "scan"},
	{"Laboratory & Pathology", "Laboratory diagnostics and pathology", "microscope"},
	{"Emergency Medicine", "24/7 emergency care", "ambulance"},
	{"Pediatrics", "Child health and surgery", "baby"},
	{"Obstetrics & Gynecology", "Women's health and pregnancy", "female"},
	{"Neurosurgery", "Brain and spine surgery", "brain-cog"},
	{"Cardiothoracic Surgery", "Heart and chest surgery", "activity"},
	{"Rehabilitation", "Physiotherapy and rehab", "wheelchair"},
	{"General Surgery", "General surgical procedures", "scalpel"},
	{"Transplant", "Organ transplant programs", "recycle"},
	{"Check-Up", "Comprehensive health check-up", "clipboard-check"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	serviceRepo := database.NewHealthServiceAdapter(pgClient)
	hospitalRepo := database.NewHospitalAdapter(pgClient)
	linkRepo := database.NewHospitalServiceLinkAdapter(pgClient)

	added, err := seedHealthServices(ctx, serviceRepo)
	if err != nil {
		log.Fatalf("Failed to seed health services: %v", err)
	}
	log.Printf("Seeded %d new health services", added)

	groups, err := services.LoadKeywordGroups(cfg.Ingest.KeywordsPath)
	if err != nil {
		log.Fatalf("Failed to load keyword groups: %v", err)
	}

	seeder := services.NewServiceLinkSeeder(hospitalRepo, serviceRepo, linkRepo, groups)
	linked, err := seeder.LinkAll(ctx)
	if err != nil {
		log.Fatalf("Failed to link hospitals to services: %v", err)
	}
	log.Printf("Created %d new hospital-service links", linked)
}

// seedHealthServices inserts any missing categories, matching existing rows
// by case-insensitive name so reruns are no-ops
func seedHealthServices(ctx context.Context, repo repositories.HealthServiceRepository) (int, error) {
	names, err := repo.ListNames(ctx)
	if err != nil {
		return 0, err
	}

	existing := make(map[string]struct{}, len(names))
	for _, name := range names {
		existing[strings.ToLower(name)] = struct{}{}
	}

	added := 0
	for _, cat := range healthServiceCategories {
		if _, ok := existing[strings.ToLower(cat.name)]; ok {
			continue
		}

		service := &entities.HealthService{
			ID:          uuid.New().String(),
			Name:        cat.name,
			Description: cat.description,
			IconKey:     cat.iconKey,
			Category:    cat.name,
			IsActive:    true,
			CreatedAt:   time.Now(),
		}
		if err := repo.Create(ctx, service); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}
