package database

import (
	"fmt"
	"log"
	"os"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/utils/auth"
	"github.com/careerhq/careerhq-api/utils/slug"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedCountries(); err != nil {
		return fmt.Errorf("failed to seed countries: %w", err)
	}

	if err := s.SeedUniversities(); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		Password:     passwordHash,
		Name:         "System Administrator",
		Role:         model.RoleAdmin,
		TokenVersion: 0,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedCountries creates sample destination countries
func (s *Seeder) SeedCountries() error {
	var count int64
	if err := s.db.Model(&model.Country{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Countries already exist, skipping...")
		return nil
	}

	countries := []model.Country{
		{
			Name:        "Canada",
			Code:        "CA",
			Currency:    "CAD",
			Flag:        "🇨🇦",
			Description: "A popular destination with post-graduation work permits and a clear path to permanent residency.",
			Published:   true,
		},
		{
			Name:        "Australia",
			Code:        "AU",
			Currency:    "AUD",
			Flag:        "🇦🇺",
			Description: "Home to several top-100 universities with strong support for international students.",
			Published:   true,
		},
		{
			Name:        "United Kingdom",
			Code:        "GB",
			Currency:    "GBP",
			Flag:        "🇬🇧",
			Description: "One-year master's programs and the Graduate Route post-study work visa.",
			Published:   true,
		},
	}

	for i := range countries {
		countries[i].Slug = slug.Make(countries[i].Name)
	}

	if err := s.db.Create(&countries).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d countries\n", len(countries))
	return nil
}

// SeedUniversities creates sample universities
func (s *Seeder) SeedUniversities() error {
	var count int64
	if err := s.db.Model(&model.University{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Universities already exist, skipping...")
		return nil
	}

	var canada model.Country
	if err := s.db.Where("code = ?", "CA").First(&canada).Error; err != nil {
		return err
	}

	var australia model.Country
	if err := s.db.Where("code = ?", "AU").First(&australia).Error; err != nil {
		return err
	}

	universities := []model.University{
		{
			Name:        "University of Toronto",
			CountryID:   canada.ID,
			City:        "Toronto",
			Website:     "utoronto.ca",
			Description: "Canada's largest research university.",
			Ranking:     21,
			Published:   true,
		},
		{
			Name:        "University of Melbourne",
			CountryID:   australia.ID,
			City:        "Melbourne",
			Website:     "unimelb.edu.au",
			Description: "Australia's leading comprehensive research university.",
			Ranking:     14,
			Published:   true,
		},
	}

	for i := range universities {
		universities[i].Slug = slug.Make(universities[i].Name)
	}

	if err := s.db.Create(&universities).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d universities\n", len(universities))
	return nil
}

// SeedCourses creates sample courses
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	var toronto model.University
	if err := s.db.Where("slug = ?", "university-of-toronto").First(&toronto).Error; err != nil {
		return err
	}

	courses := []model.Course{
		{
			UniversityID:        toronto.ID,
			CountryID:           toronto.CountryID,
			ProgramName:         "Master of Computer Science",
			StudyLevel:          model.LevelPostgraduate,
			Campus:              "St. George",
			Duration:            "2 years",
			Intakes:             "September",
			YearlyTuitionFees:   "58000",
			Currency:            "CAD",
			IeltsScore:          7.0,
			IeltsNoBandLessThan: 6.5,
			Published:           true,
		},
		{
			UniversityID:        toronto.ID,
			CountryID:           toronto.CountryID,
			ProgramName:         "Bachelor of Commerce",
			StudyLevel:          model.LevelUndergraduate,
			Campus:              "St. George",
			Duration:            "4 years",
			Intakes:             "September, January",
			YearlyTuitionFees:   "61000",
			Currency:            "CAD",
			IeltsScore:          6.5,
			IeltsNoBandLessThan: 6.0,
			Published:           true,
		},
	}

	for i := range courses {
		courses[i].Slug = slug.Make(courses[i].ProgramName + " " + toronto.Name)
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d courses\n", len(courses))
	return nil
}

// RunSeeds is the entry point used by the seed command
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
