package importer

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/careerhq/careerhq-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and resets
// the import tables. Tests are skipped when the variable is unset so the unit
// suite stays runnable without Postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping importer integration tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	if err := db.AutoMigrate(&model.Country{}, &model.University{}, &model.Course{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	for _, table := range []string{"courses", "universities", "countries"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}

	return db
}

func TestImportAutoCreatesParents(t *testing.T) {
	db := openTestDB(t)
	imp := NewImporter(db)

	result := imp.Import(context.Background(), []CourseRow{{
		UniversityName:      "New Tech",
		CountryName:         "Wonderland",
		ProgramName:         "AI",
		StudyLevel:          "Postgraduate",
		IeltsScore:          "6.5",
		IeltsNoBandLessThan: "6.0",
		YearlyTuitionFees:   "10000",
	}})

	if result.Success != 1 || result.Failed != 0 {
		t.Fatalf("got success=%d failed=%d errors=%v, want 1/0", result.Success, result.Failed, result.Errors)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %v, want exactly two auto-creation notices", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Auto-created country") ||
		!strings.Contains(result.Errors[1], "Auto-created university") {
		t.Fatalf("errors = %v, want country then university notices", result.Errors)
	}

	var countryCount int64
	db.Model(&model.Country{}).Where("name = ?", "Wonderland").Count(&countryCount)
	if countryCount != 1 {
		t.Errorf("country count = %d, want exactly one auto-created country", countryCount)
	}

	var university model.University
	if err := db.Where("name = ?", "New Tech").First(&university).Error; err != nil {
		t.Fatalf("auto-created university missing: %v", err)
	}
	if university.Website != "newtech.edu" {
		t.Errorf("placeholder website = %q", university.Website)
	}

	var course model.Course
	if err := db.Where("program_name = ?", "AI").First(&course).Error; err != nil {
		t.Fatalf("course missing: %v", err)
	}
	if course.Campus != "Main Campus" || course.Duration != "Not specified" || course.Currency != "USD" {
		t.Errorf("defaults not applied: %+v", course)
	}
}

func TestImportDuplicateRowsAdditiveOnly(t *testing.T) {
	db := openTestDB(t)
	imp := NewImporter(db)

	row := CourseRow{
		UniversityName:      "New Tech",
		CountryName:         "Wonderland",
		ProgramName:         "AI",
		StudyLevel:          "Postgraduate",
		IeltsScore:          "6.5",
		IeltsNoBandLessThan: "6.0",
	}

	result := imp.Import(context.Background(), []CourseRow{row, row})

	if result.Success != 1 || result.Failed != 1 {
		t.Fatalf("got success=%d failed=%d errors=%v, want 1/1", result.Success, result.Failed, result.Errors)
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "already exists") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want already-exists message", result.Errors)
	}

	var courseCount int64
	db.Model(&model.Course{}).Count(&courseCount)
	if courseCount != 1 {
		t.Errorf("course count = %d, want 1 (import is additive-only)", courseCount)
	}
}

func TestImportBadRowDoesNotAbortBatch(t *testing.T) {
	db := openTestDB(t)
	imp := NewImporter(db)

	good := func(program string) CourseRow {
		return CourseRow{
			UniversityName:      "New Tech",
			CountryName:         "Wonderland",
			ProgramName:         program,
			StudyLevel:          "Postgraduate",
			IeltsScore:          "6.5",
			IeltsNoBandLessThan: "6.0",
		}
	}
	bad := good("Data Science")
	bad.IeltsScore = "six point five"

	result := imp.Import(context.Background(), []CourseRow{good("AI"), bad, good("Robotics")})

	if result.Success != 2 || result.Failed != 1 {
		t.Fatalf("got success=%d failed=%d errors=%v, want 2/1", result.Success, result.Failed, result.Errors)
	}

	var courseCount int64
	db.Model(&model.Course{}).Count(&courseCount)
	if courseCount != 2 {
		t.Errorf("course count = %d, want 2", courseCount)
	}
}
