package models

import "time"

// PlainProduct is the caller-facing shape of a Product: images as plain URLs.
type PlainProduct struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes"`
	Gender      string    `json:"gender"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPlainProduct flattens the image entities of p to their URLs, keeping order.
func ToPlainProduct(p *Product) PlainProduct {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return withImages(p, urls)
}

// withImages copies the attributes of p and attaches the given URL list.
func withImages(p *Product, urls []string) PlainProduct {
	if urls == nil {
		urls = []string{}
	}
	return PlainProduct{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       nonNil(p.Sizes),
		Gender:      p.Gender,
		Tags:        nonNil(p.Tags),
		Images:      urls,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPlainProductWithURLs pairs p with the URL list the caller supplied,
// which saves a reload right after a create.
func ToPlainProductWithURLs(p *Product, urls []string) PlainProduct {
	return withImages(p, append([]string(nil), urls...))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
