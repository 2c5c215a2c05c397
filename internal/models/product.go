package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is the catalog aggregate root. It owns its images.
type Product struct {
	ID          string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string                      `json:"title" gorm:"type:text;not null;uniqueIndex"`
	Price       float64                     `json:"price" gorm:"not null;default:0"`
	Description string                      `json:"description" gorm:"type:text;not null;default:''"`
	Slug        string                      `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Stock       int                         `json:"stock" gorm:"not null;default:0"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes"`
	Gender      string                      `json:"gender" gorm:"type:text;not null"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Images      []ProductImage              `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// BeforeCreate assigns a new identifier when none was set.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave keeps the slug derived and normalized on every write.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = NormalizeSlug(p.Slug)
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	if p.Sizes == nil {
		p.Sizes = datatypes.JSONSlice[string]{}
	}
	return nil
}

// NormalizeSlug lower-cases s, turns spaces into underscores and drops apostrophes.
func NormalizeSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "'", "")
}

// NewProductImages builds unsaved image entities, one per URL, in order.
func NewProductImages(urls []string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, ProductImage{URL: url, Position: i})
	}
	return images
}
