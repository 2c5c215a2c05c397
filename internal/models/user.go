package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account allowed to manage the catalog.
type User struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string                      `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  string                      `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	FullName  string                      `json:"full_name" gorm:"type:text;not null"`
	IsActive  bool                        `json:"is_active" gorm:"not null;default:true"`
	Roles     datatypes.JSONSlice[string] `json:"roles"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if len(u.Roles) == 0 {
		u.Roles = datatypes.JSONSlice[string]{"user"}
	}
	return nil
}

// BeforeSave normalizes the email so lookups are case-insensitive.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
