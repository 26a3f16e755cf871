package resolver

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/careerhq/careerhq-api/model"
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

func countryRows(id, name, slug string, published bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "slug", "published"}).
		AddRow(id, name, slug, published)
}

func emptyCountryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "slug", "published"})
}

func TestIsNativeID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"507F1F77BCF86CD799439011", true},
		{"507f1f77bcf86cd79943901", false},   // 23 chars
		{"507f1f77bcf86cd7994390111", false}, // 25 chars
		{"harvard-university", false},
		{"zzzf1f77bcf86cd799439011", false}, // non-hex
		{"", false},
	}

	for _, tc := range cases {
		if got := IsNativeID(tc.in); got != tc.want {
			t.Errorf("IsNativeID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNamePattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"harvard-university", `^harvard\s+university$`},
		{"mit", `^mit$`},
		{"a-b-c", `^a\s+b\s+c$`},
		{"st. (john)", `^st\. \(john\)$`},
	}

	for _, tc := range cases {
		if got := NamePattern(tc.in); got != tc.want {
			t.Errorf("NamePattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFindBySlugOrIDEmptyCandidate(t *testing.T) {
	db, mock := newMockDB(t)

	var country model.Country
	for _, candidate := range []string{"", "   "} {
		if err := FindBySlugOrID(db, &country, candidate, "name"); !errors.Is(err, ErrEmptyCandidate) {
			t.Errorf("candidate %q: got %v, want ErrEmptyCandidate", candidate, err)
		}
	}

	// No lookup may run before the candidate check.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestFindBySlugOrIDNativeIDTakesPrecedence(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE id = \$1`).
		WillReturnRows(countryRows("507f1f77bcf86cd799439011", "Canada", "canada", true))

	var country model.Country
	if err := FindBySlugOrID(db, &country, "507f1f77bcf86cd799439011", "name"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if country.Name != "Canada" {
		t.Errorf("resolved wrong record: %+v", country)
	}

	// The id path must not fall through to slug or name lookups.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries after id hit: %v", err)
	}
}

func TestFindBySlugOrIDNativeIDMissIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE id = \$1`).
		WillReturnRows(emptyCountryRows())

	var country model.Country
	err := FindBySlugOrID(db, &country, "507f1f77bcf86cd799439011", "name")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("id-format candidate fell through to another lookup: %v", err)
	}
}

func TestFindBySlugOrIDSlugBeforeName(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "universities" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "published"}).
			AddRow("64b3f0aa91c2d84fa1e00001", "HARVARD UNIVERSITY", "harvard-university", true))

	var university model.University
	if err := FindBySlugOrID(db, &university, "harvard-university", "name"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if university.Slug != "harvard-university" {
		t.Errorf("resolved wrong record: %+v", university)
	}

	// Slug hit must short-circuit before any name-based fallback.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries after slug hit: %v", err)
	}
}

func TestFindBySlugOrIDNamePatternFallback(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE slug = \$1`).
		WillReturnRows(emptyCountryRows())
	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE name ~\* \$1`).
		WillReturnRows(countryRows("64b3f0aa91c2d84fa1e00002", "New Zealand", "", true))

	var country model.Country
	if err := FindBySlugOrID(db, &country, "new-zealand", "name"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if country.Name != "New Zealand" {
		t.Errorf("resolved wrong record: %+v", country)
	}
}

func TestFindBySlugOrIDRawNameFallback(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE slug = \$1`).
		WillReturnRows(emptyCountryRows())
	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE name ~\* \$1`).
		WillReturnRows(emptyCountryRows())
	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WillReturnRows(countryRows("64b3f0aa91c2d84fa1e00003", "Germany", "", true))

	var country model.Country
	if err := FindBySlugOrID(db, &country, "germany", "name"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if country.Name != "Germany" {
		t.Errorf("resolved wrong record: %+v", country)
	}
}

func TestFindBySlugOrIDExhaustedIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE slug = \$1`).
		WillReturnRows(emptyCountryRows())
	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE name ~\* \$1`).
		WillReturnRows(emptyCountryRows())
	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WillReturnRows(emptyCountryRows())

	var country model.Country
	if err := FindBySlugOrID(db, &country, "atlantis", "name"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFindBySlugOrIDStorageErrorBecomesNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE slug = \$1`).
		WillReturnError(errors.New("connection reset by peer"))

	var country model.Country
	err := FindBySlugOrID(db, &country, "canada", "name")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	// A storage fault stops resolution; later steps must not run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries after storage fault: %v", err)
	}
}

func TestFindPublishedHidesUnpublished(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE slug = \$1`).
		WillReturnRows(countryRows("64b3f0aa91c2d84fa1e00004", "Canada", "canada", false))

	var country model.Country
	if err := FindPublished(db, &country, "canada", "name"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for unpublished record", err)
	}
}

func TestFindPublishedReturnsPublished(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "countries" WHERE slug = \$1`).
		WillReturnRows(countryRows("64b3f0aa91c2d84fa1e00005", "Canada", "canada", true))

	var country model.Country
	if err := FindPublished(db, &country, "canada", "name"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if country.Slug != "canada" {
		t.Errorf("resolved wrong record: %+v", country)
	}
}
