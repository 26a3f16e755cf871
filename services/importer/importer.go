// Package importer ingests tabular course rows, creating missing parent
// countries and universities along the way. Rows are processed independently:
// one bad row never aborts the batch, and created rows stay committed.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/utils/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseRow is one loosely-typed row of import data. Numeric fields arrive as
// strings and list fields as comma-separated values, matching the CSV export
// the consultancy team works from.
type CourseRow struct {
	UniversityName      string `json:"universityName"`
	CountryName         string `json:"countryName"`
	ProgramName         string `json:"programName"`
	StudyLevel          string `json:"studyLevel"`
	Campus              string `json:"campus"`
	Duration            string `json:"duration"`
	Intakes             string `json:"intakes"`
	YearlyTuitionFees   string `json:"yearlyTuitionFees"`
	Currency            string `json:"currency"`
	ApplicationDeadline string `json:"applicationDeadline"`
	IeltsScore          string `json:"ieltsScore"`
	IeltsNoBandLessThan string `json:"ieltsNoBandLessThan"`
	PteScore            string `json:"pteScore"`
	ToeflScore          string `json:"toeflScore"`
	DuolingoScore       string `json:"duolingoScore"`
	GmatScore           string `json:"gmatScore"`
	GreScore            string `json:"greScore"`
	Scholarships        string `json:"scholarships"`
	CareerProspects     string `json:"careerProspects"`
	Accreditation       string `json:"accreditation"`
	Specializations     string `json:"specializations"`
}

// Result aggregates a batch run. Errors carries both failure explanations and
// informational auto-creation notices, in row order.
type Result struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// Importer runs bulk course imports
type Importer struct {
	db *gorm.DB
}

// NewImporter creates a new course importer
func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Import processes rows sequentially and reports per-row outcomes. There are
// no batch-level transaction semantics: rows created before a failure remain.
func (imp *Importer) Import(ctx context.Context, rows []CourseRow) Result {
	result := Result{Errors: []string{}}

	for i, row := range rows {
		rowNum := i + 1
		if err := imp.importRow(ctx, rowNum, row, &result); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}
		result.Success++
	}

	return result
}

func (imp *Importer) importRow(ctx context.Context, rowNum int, row CourseRow, result *Result) error {
	universityName := strings.TrimSpace(row.UniversityName)
	countryName := strings.TrimSpace(row.CountryName)
	programName := strings.TrimSpace(row.ProgramName)

	if universityName == "" || countryName == "" || programName == "" {
		return errors.New("Missing required fields")
	}

	country, err := imp.findOrCreateCountry(ctx, rowNum, countryName, result)
	if err != nil {
		return err
	}

	university, err := imp.findOrCreateUniversity(ctx, rowNum, universityName, country, result)
	if err != nil {
		return err
	}

	ielts, err1 := parseScore(row.IeltsScore)
	ieltsBand, err2 := parseScore(row.IeltsNoBandLessThan)
	if err1 != nil || err2 != nil {
		return errors.New("Invalid IELTS scores")
	}

	scholarships := SplitList(row.Scholarships)
	careerProspects := SplitList(row.CareerProspects)
	accreditation := SplitList(row.Accreditation)
	specializations := SplitList(row.Specializations)

	studyLevel := strings.TrimSpace(row.StudyLevel)
	if !model.IsValidStudyLevel(studyLevel) {
		return fmt.Errorf("Invalid study level %q", studyLevel)
	}

	var existing int64
	err = imp.db.WithContext(ctx).Model(&model.Course{}).
		Where("university_id = ? AND program_name = ? AND study_level = ?", university.ID, programName, studyLevel).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("Course %q (%s) already exists at %s", programName, studyLevel, university.Name)
	}

	course := model.Course{
		UniversityID:        university.ID,
		CountryID:           country.ID,
		ProgramName:         programName,
		StudyLevel:          studyLevel,
		Slug:                slug.Make(programName + " " + university.Name),
		Campus:              defaultString(row.Campus, "Main Campus"),
		Duration:            defaultString(row.Duration, "Not specified"),
		Intakes:             strings.TrimSpace(row.Intakes),
		YearlyTuitionFees:   strings.TrimSpace(row.YearlyTuitionFees),
		Currency:            defaultString(row.Currency, "USD"),
		ApplicationDeadline: strings.TrimSpace(row.ApplicationDeadline),
		IeltsScore:          ielts,
		IeltsNoBandLessThan: ieltsBand,
		PteScore:            parseOptionalScore(row.PteScore),
		ToeflScore:          parseOptionalScore(row.ToeflScore),
		DuolingoScore:       parseOptionalScore(row.DuolingoScore),
		GmatScore:           parseOptionalScore(row.GmatScore),
		GreScore:            parseOptionalScore(row.GreScore),
		Scholarships:        datatypes.NewJSONSlice(scholarships),
		CareerProspects:     datatypes.NewJSONSlice(careerProspects),
		Accreditation:       datatypes.NewJSONSlice(accreditation),
		Specializations:     datatypes.NewJSONSlice(specializations),
		Published:           true,
	}

	return imp.db.WithContext(ctx).Create(&course).Error
}

// findOrCreateCountry looks a country up by exact name and synthesizes it from
// the defaults table when absent. The find-then-create pair is not wrapped in
// a transaction; two concurrent imports of the same new country can race.
func (imp *Importer) findOrCreateCountry(ctx context.Context, rowNum int, name string, result *Result) (*model.Country, error) {
	var country model.Country
	err := imp.db.WithContext(ctx).Where("name = ?", name).First(&country).Error
	if err == nil {
		return &country, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	info := CountryInfoFor(name)
	country = model.Country{
		Name:      name,
		Slug:      slug.Make(name),
		Code:      info.Code,
		Currency:  info.Currency,
		Flag:      info.Flag,
		Published: true,
	}
	if err := imp.db.WithContext(ctx).Create(&country).Error; err != nil {
		return nil, err
	}

	result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Auto-created country %q", rowNum, name))
	return &country, nil
}

// findOrCreateUniversity looks a university up by (name, country) and
// synthesizes a placeholder record when absent.
func (imp *Importer) findOrCreateUniversity(ctx context.Context, rowNum int, name string, country *model.Country, result *Result) (*model.University, error) {
	var university model.University
	err := imp.db.WithContext(ctx).Where("name = ? AND country_id = ?", name, country.ID).First(&university).Error
	if err == nil {
		return &university, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	university = model.University{
		Name:        name,
		Slug:        slug.Make(name),
		CountryID:   country.ID,
		Website:     PlaceholderWebsite(name),
		Description: fmt.Sprintf("Details for %s will be added soon.", name),
		Published:   true,
	}
	if err := imp.db.WithContext(ctx).Create(&university).Error; err != nil {
		return nil, err
	}

	result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Auto-created university %q", rowNum, name))
	return &university, nil
}

// PlaceholderWebsite derives a stand-in website from a university name:
// lowercase, non-alphanumerics stripped, truncated to 20 characters, ".edu"
// appended.
func PlaceholderWebsite(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	token := b.String()
	if len(token) > 20 {
		token = token[:20]
	}
	return token + ".edu"
}

// SplitList splits a comma-separated field into trimmed, non-empty tokens.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseScore(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseOptionalScore returns nil for blank or unparseable optional scores.
func parseOptionalScore(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func defaultString(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
