package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles for the admin back-office.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User represents a back-office account
type User struct {
	ID           string         `gorm:"type:char(24);primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string         `gorm:"type:text;not null" json:"-"`
	Role         string         `gorm:"type:varchar(20);default:'editor'" json:"role"`
	TokenVersion int            `gorm:"default:0" json:"-"` // bumped to invalidate all tokens
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// IsAdmin reports whether the user may manage content and leads.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
