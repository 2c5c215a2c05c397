package models

// CreateProductInput is the request body for creating a product.
type CreateProductInput struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// ToProduct builds the aggregate described by the input, images included.
func (in CreateProductInput) ToProduct() *Product {
	return &Product{
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Slug:        in.Slug,
		Stock:       in.Stock,
		Sizes:       in.Sizes,
		Gender:      in.Gender,
		Tags:        in.Tags,
		Images:      NewProductImages(in.Images),
	}
}

// UpdateProductInput carries a partial update. Nil fields are left untouched;
// a non-nil Images replaces the whole image set, an empty one clears it.
type UpdateProductInput struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// ApplyTo merges the supplied attributes onto p. Images are not touched.
func (in UpdateProductInput) ApplyTo(p *Product) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
}

// Pagination selects a page of products. Nil fields take the defaults.
type Pagination struct {
	Limit  *int
	Offset *int
}

// DefaultPageLimit is the page size used when no limit is given.
const DefaultPageLimit = 10

// Values resolves the page window. Negative values are treated as zero.
func (p Pagination) Values() (limit, offset int) {
	limit = DefaultPageLimit
	if p.Limit != nil {
		limit = max(*p.Limit, 0)
	}
	if p.Offset != nil {
		offset = max(*p.Offset, 0)
	}
	return limit, offset
}

// RegisterUserInput is the request body for creating an account.
type RegisterUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	FullName string `json:"full_name" validate:"required,min=1"`
}

// LoginUserInput is the request body for logging in.
type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register, login and check-status.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
