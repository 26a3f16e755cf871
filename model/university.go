package model

import (
	"time"

	"gorm.io/gorm"
)

// University represents an educational institution within a country
type University struct {
	ID          string         `gorm:"type:char(24);primaryKey" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Slug        string         `gorm:"type:varchar(255);index" json:"slug"`
	CountryID   string         `gorm:"type:char(24);not null;index" json:"country_id"`
	City        string         `gorm:"type:varchar(255)" json:"city"`
	Website     string         `gorm:"type:varchar(255)" json:"website"`
	Description string         `gorm:"type:text" json:"description"`
	LogoKey     string         `gorm:"type:varchar(255)" json:"logo_key"` // media host object key
	LogoURL     string         `gorm:"type:varchar(512)" json:"logo_url"`
	Ranking     int            `gorm:"default:0" json:"ranking"`
	Published   bool           `gorm:"default:true" json:"published"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Country Country  `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Courses []Course `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"courses,omitempty"`
}

func (u *University) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

func (u *University) IsPublished() bool { return u.Published }
