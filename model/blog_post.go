package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content block types for blog posts.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
)

// ContentBlock is one tagged section of a blog post body.
type ContentBlock struct {
	Type string `json:"type"` // heading or paragraph
	Text string `json:"text"`
}

// BlogPost represents an article on the marketing site
type BlogPost struct {
	ID            string                            `gorm:"type:char(24);primaryKey" json:"id"`
	Title         string                            `gorm:"not null" json:"title"`
	Slug          string                            `gorm:"type:varchar(255);index" json:"slug"`
	Excerpt       string                            `gorm:"type:text" json:"excerpt"`
	Content       datatypes.JSONSlice[ContentBlock] `gorm:"type:jsonb" json:"content"`
	Author        string                            `gorm:"type:varchar(255)" json:"author"`
	Category      string                            `gorm:"type:varchar(100)" json:"category"`
	CoverImageKey string                            `gorm:"type:varchar(255)" json:"cover_image_key"`
	CoverImageURL string                            `gorm:"type:varchar(512)" json:"cover_image_url"`
	Published     bool                              `gorm:"default:true" json:"published"`
	CreatedAt     time.Time                         `json:"created_at"`
	UpdatedAt     time.Time                         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt                    `gorm:"index" json:"-"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

func (b *BlogPost) IsPublished() bool { return b.Published }
