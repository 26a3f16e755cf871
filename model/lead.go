package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
)

// LeadStatuses lists every valid lead status.
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusConverted,
	LeadStatusClosed,
}

// IsValidLeadStatus reports whether status is one of the fixed enumeration values.
func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Lead represents an enquiry captured from the public contact forms
type Lead struct {
	ID                   string         `gorm:"type:char(24);primaryKey" json:"id"`
	Name                 string         `gorm:"not null" json:"name"`
	Email                string         `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone                string         `gorm:"type:varchar(50)" json:"phone"`
	ProgramOfInterest    string         `gorm:"type:varchar(255)" json:"program_of_interest"`
	UniversityOfInterest string         `gorm:"type:varchar(255)" json:"university_of_interest"`
	CountryOfInterest    string         `gorm:"type:varchar(255)" json:"country_of_interest"`
	Message              string         `gorm:"type:text" json:"message"`
	Status               string         `gorm:"type:varchar(20);default:'new';index" json:"status"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	return nil
}
