package model

import (
	"time"

	"gorm.io/gorm"
)

// Country represents a study destination
type Country struct {
	ID          string         `gorm:"type:char(24);primaryKey" json:"id"`
	Name        string         `gorm:"not null;uniqueIndex" json:"name"`
	Slug        string         `gorm:"type:varchar(255);index" json:"slug"`
	Code        string         `gorm:"type:varchar(10)" json:"code"` // e.g., "US", "GB"
	Currency    string         `gorm:"type:varchar(10)" json:"currency"`
	Flag        string         `gorm:"type:varchar(16)" json:"flag"` // emoji glyph
	Description string         `gorm:"type:text" json:"description"`
	Published   bool           `gorm:"default:true" json:"published"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Universities []University `gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE" json:"universities,omitempty"`
}

func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// IsPublished reports whether the record is visible on public reads.
func (c *Country) IsPublished() bool { return c.Published }
