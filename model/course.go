package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Study levels accepted for a course.
const (
	LevelUndergraduate = "Undergraduate"
	LevelPostgraduate  = "Postgraduate"
	LevelDoctorate     = "Doctorate"
	LevelCertificate   = "Certificate"
	LevelDiploma       = "Diploma"
)

// StudyLevels lists every valid study level.
var StudyLevels = []string{
	LevelUndergraduate,
	LevelPostgraduate,
	LevelDoctorate,
	LevelCertificate,
	LevelDiploma,
}

// IsValidStudyLevel reports whether level is one of the fixed enumeration values.
func IsValidStudyLevel(level string) bool {
	for _, l := range StudyLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Course represents a program offered by a university
type Course struct {
	ID           string `gorm:"type:char(24);primaryKey" json:"id"`
	UniversityID string `gorm:"type:char(24);not null;index" json:"university_id"`
	CountryID    string `gorm:"type:char(24);not null;index" json:"country_id"`
	ProgramName  string `gorm:"not null" json:"program_name"`
	StudyLevel   string `gorm:"type:varchar(32);not null" json:"study_level"`
	Slug         string `gorm:"type:varchar(255);index" json:"slug"`

	Campus              string `gorm:"type:varchar(255);default:'Main Campus'" json:"campus"`
	Duration            string `gorm:"type:varchar(100);default:'Not specified'" json:"duration"`
	Intakes             string `gorm:"type:varchar(255)" json:"intakes"`
	YearlyTuitionFees   string `gorm:"type:varchar(100)" json:"yearly_tuition_fees"`
	Currency            string `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	ApplicationDeadline string `gorm:"type:varchar(255)" json:"application_deadline"`

	// Test score thresholds. IELTS is mandatory, the rest are optional.
	IeltsScore          float64  `gorm:"not null" json:"ielts_score"`
	IeltsNoBandLessThan float64  `gorm:"not null" json:"ielts_no_band_less_than"`
	PteScore            *float64 `json:"pte_score,omitempty"`
	ToeflScore          *float64 `json:"toefl_score,omitempty"`
	DuolingoScore       *float64 `json:"duolingo_score,omitempty"`
	GmatScore           *float64 `json:"gmat_score,omitempty"`
	GreScore            *float64 `json:"gre_score,omitempty"`

	Scholarships    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"scholarships"`
	CareerProspects datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"career_prospects"`
	Accreditation   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"accreditation"`
	Specializations datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"specializations"`

	Published bool           `gorm:"default:true" json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	University University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	Country    Country    `gorm:"foreignKey:CountryID" json:"country,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

func (c *Course) IsPublished() bool { return c.Published }
