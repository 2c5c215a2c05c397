package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImage is an image owned by exactly one Product.
type ProductImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	URL       string `json:"url" gorm:"type:text;not null"`
	ProductID string `json:"-" gorm:"type:varchar(36);not null;index"`
	Position  int    `json:"-" gorm:"not null;default:0"` // insertion index
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
