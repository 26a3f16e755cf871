package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return db, mock
}

func TestCountryInfoFor(t *testing.T) {
	cases := []struct {
		name         string
		wantCode     string
		wantCurrency string
	}{
		{"Canada", "CA", "CAD"},
		{"canada", "CA", "CAD"},
		{"  United Kingdom  ", "GB", "GBP"},
		{"Wonderland", "WO", "USD"},
		{"x", "X", "USD"},
	}

	for _, tc := range cases {
		info := CountryInfoFor(tc.name)
		if info.Code != tc.wantCode || info.Currency != tc.wantCurrency {
			t.Errorf("CountryInfoFor(%q) = %+v, want code %s currency %s",
				tc.name, info, tc.wantCode, tc.wantCurrency)
		}
	}

	if CountryInfoFor("Wonderland").Flag != "🌍" {
		t.Error("unknown country should get the generic globe glyph")
	}
	if CountryInfoFor("Australia").Flag == "🌍" {
		t.Error("known country should keep its own flag")
	}
}

func TestPlaceholderWebsite(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"New Tech", "newtech.edu"},
		{"St. John's College", "stjohnscollege.edu"},
		{"The Very Long Institute Of Technology", "theverylonginstitute.edu"},
		{"ABC-123", "abc123.edu"},
	}

	for _, tc := range cases {
		if got := PlaceholderWebsite(tc.in); got != tc.want {
			t.Errorf("PlaceholderWebsite(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Merit Scholarship , , Sports Grant,  ")
	if len(got) != 2 || got[0] != "Merit Scholarship" || got[1] != "Sports Grant" {
		t.Errorf("SplitList returned %v", got)
	}

	if got := SplitList(""); got != nil {
		t.Errorf("SplitList(\"\") = %v, want nil", got)
	}
}

func TestImportMissingRequiredFields(t *testing.T) {
	db, mock := newMockDB(t)
	imp := NewImporter(db)

	result := imp.Import(context.Background(), []CourseRow{
		{CountryName: "Canada", ProgramName: "AI"}, // no university
		{UniversityName: "New Tech", ProgramName: "AI"},
		{UniversityName: "New Tech", CountryName: "Canada"},
	})

	if result.Success != 0 || result.Failed != 3 {
		t.Fatalf("got success=%d failed=%d, want 0/3", result.Success, result.Failed)
	}
	for i, msg := range result.Errors {
		if !strings.Contains(msg, "Missing required fields") {
			t.Errorf("error %d = %q, want missing-fields message", i, msg)
		}
	}

	// Required-field validation happens before any lookup.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestImportInvalidIeltsScores(t *testing.T) {
	db, mock := newMockDB(t)
	imp := NewImporter(db)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("64b3f0aa91c2d84fa1e00001", "Canada"))
	mock.ExpectQuery(`SELECT \* FROM "universities" WHERE \(name = \$1 AND country_id = \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country_id"}).
			AddRow("64b3f0aa91c2d84fa1e00002", "New Tech", "64b3f0aa91c2d84fa1e00001"))

	result := imp.Import(context.Background(), []CourseRow{{
		UniversityName:      "New Tech",
		CountryName:         "Canada",
		ProgramName:         "AI",
		StudyLevel:          "Postgraduate",
		IeltsScore:          "not-a-number",
		IeltsNoBandLessThan: "6.0",
	}})

	if result.Success != 0 || result.Failed != 1 {
		t.Fatalf("got success=%d failed=%d, want 0/1", result.Success, result.Failed)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Invalid IELTS scores") {
		t.Fatalf("errors = %v, want invalid IELTS message", result.Errors)
	}

	// The row fails at score parsing; no course queries may run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestImportInvalidStudyLevel(t *testing.T) {
	db, mock := newMockDB(t)
	imp := NewImporter(db)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("64b3f0aa91c2d84fa1e00001", "Canada"))
	mock.ExpectQuery(`SELECT \* FROM "universities" WHERE \(name = \$1 AND country_id = \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country_id"}).
			AddRow("64b3f0aa91c2d84fa1e00002", "New Tech", "64b3f0aa91c2d84fa1e00001"))

	result := imp.Import(context.Background(), []CourseRow{{
		UniversityName:      "New Tech",
		CountryName:         "Canada",
		ProgramName:         "AI",
		StudyLevel:          "Bachelors", // not in the enumeration
		IeltsScore:          "6.5",
		IeltsNoBandLessThan: "6.0",
	}})

	if result.Success != 0 || result.Failed != 1 {
		t.Fatalf("got success=%d failed=%d, want 0/1", result.Success, result.Failed)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Invalid study level") {
		t.Fatalf("errors = %v, want invalid study level message", result.Errors)
	}
}

func TestImportDuplicateCourseIsSkipped(t *testing.T) {
	db, mock := newMockDB(t)
	imp := NewImporter(db)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("64b3f0aa91c2d84fa1e00001", "Canada"))
	mock.ExpectQuery(`SELECT \* FROM "universities" WHERE \(name = \$1 AND country_id = \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country_id"}).
			AddRow("64b3f0aa91c2d84fa1e00002", "New Tech", "64b3f0aa91c2d84fa1e00001"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	result := imp.Import(context.Background(), []CourseRow{{
		UniversityName:      "New Tech",
		CountryName:         "Canada",
		ProgramName:         "AI",
		StudyLevel:          "Postgraduate",
		IeltsScore:          "6.5",
		IeltsNoBandLessThan: "6.0",
	}})

	if result.Success != 0 || result.Failed != 1 {
		t.Fatalf("got success=%d failed=%d, want 0/1", result.Success, result.Failed)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "already exists") {
		t.Fatalf("errors = %v, want already-exists message", result.Errors)
	}
}
