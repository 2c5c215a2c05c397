package models_test

import (
	"testing"

	"teslo/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestToPlainProductKeepsImageOrder(t *testing.T) {
	p := &models.Product{
		ID:     "p-1",
		Title:  "Teslo Shirt",
		Images: models.NewProductImages([]string{"b.jpg", "a.jpg", "c.jpg"}),
	}

	plain := models.ToPlainProduct(p)
	assert.Equal(t, []string{"b.jpg", "a.jpg", "c.jpg"}, plain.Images)
	assert.Equal(t, "Teslo Shirt", plain.Title)
	assert.Equal(t, []string{}, plain.Sizes)
	assert.Equal(t, []string{}, plain.Tags)
}

func TestToPlainProductWithoutImages(t *testing.T) {
	plain := models.ToPlainProduct(&models.Product{ID: "p-1"})
	assert.NotNil(t, plain.Images)
	assert.Empty(t, plain.Images)
}

func TestToPlainProductWithURLsCopiesList(t *testing.T) {
	urls := []string{"a.jpg"}
	plain := models.ToPlainProductWithURLs(&models.Product{ID: "p-1"}, urls)
	urls[0] = "changed.jpg"
	assert.Equal(t, []string{"a.jpg"}, plain.Images)
}

func TestNewProductImagesPositions(t *testing.T) {
	images := models.NewProductImages([]string{"a.jpg", "b.jpg"})
	assert.Len(t, images, 2)
	assert.Equal(t, 0, images[0].Position)
	assert.Equal(t, 1, images[1].Position)
	assert.Empty(t, images[0].ID)
}

func TestNormalizeSlug(t *testing.T) {
	tests := map[string]string{
		"Men's Chill Crew Neck": "mens_chill_crew_neck",
		"teslo-shirt":           "teslo-shirt",
		"KIDS TEE":              "kids_tee",
	}
	for in, want := range tests {
		assert.Equal(t, want, models.NormalizeSlug(in), in)
	}
}

func TestUpdateProductInputApplyTo(t *testing.T) {
	title := "New Title"
	stock := 0
	p := &models.Product{Title: "Old", Stock: 7, Price: 10, Images: models.NewProductImages([]string{"a.jpg"})}

	models.UpdateProductInput{Title: &title, Stock: &stock, Images: []string{"z.jpg"}}.ApplyTo(p)

	assert.Equal(t, "New Title", p.Title)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, 10.0, p.Price)
	assert.Equal(t, "a.jpg", p.Images[0].URL)
}

func TestPaginationValues(t *testing.T) {
	neg, five := -3, 5

	limit, offset := models.Pagination{}.Values()
	assert.Equal(t, models.DefaultPageLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset = models.Pagination{Limit: &five, Offset: &five}.Values()
	assert.Equal(t, 5, limit)
	assert.Equal(t, 5, offset)

	limit, offset = models.Pagination{Limit: &neg, Offset: &neg}.Values()
	assert.Equal(t, 0, limit)
	assert.Equal(t, 0, offset)
}
