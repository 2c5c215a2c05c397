package services

import (
	"context"

	"teslo/internal/logger"
	"teslo/internal/models"
)

// SeedService resets the catalog to a known set of products.
type SeedService struct {
	products *ProductService
	log      *logger.Logger
}

func NewSeedService(products *ProductService, log *logger.Logger) *SeedService {
	if log == nil {
		log = logger.Nop()
	}
	return &SeedService{products: products, log: log}
}

// RunSeed deletes every product and inserts the seed catalog. It returns
// the number of products inserted.
func (s *SeedService) RunSeed(ctx context.Context) (int, error) {
	if _, err := s.products.DeleteAllProducts(ctx); err != nil {
		return 0, err
	}

	inserted := 0
	for _, input := range seedProducts {
		if _, err := s.products.Create(ctx, input); err != nil {
			return inserted, err
		}
		inserted++
	}

	s.log.Info("seed executed", "products", inserted)
	return inserted, nil
}

var seedProducts = []models.CreateProductInput{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Description: "Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior for comfort in any season.",
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
		Stock:       7,
		Price:       75,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Slug:        "mens_chill_crew_neck_sweatshirt",
		Tags:        []string{"sweatshirt"},
		Gender:      "men",
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Description: "The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons.",
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
		Stock:       5,
		Price:       200,
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Slug:        "men_quilted_shirt_jacket",
		Tags:        []string{"jacket"},
		Gender:      "men",
	},
	{
		Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
		Description: "The Men's Raven Lightweight Zip Up Bomber has a premium, modern silhouette made from a sustainable bio-polyester shell and nylon lining for the ultimate in comfort.",
		Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
		Stock:       10,
		Price:       130,
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Slug:        "men_raven_lightweight_zip_up_bomber_jacket",
		Tags:        []string{"shirt"},
		Gender:      "men",
	},
	{
		Title:       "Women's Cropped Puffer Jacket",
		Description: "The Women's Cropped Puffer Jacket features a uniquely cropped silhouette for the perfect, modern style while on the go during the cozy season ahead.",
		Images:      []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
		Stock:       85,
		Price:       225,
		Sizes:       []string{"XS", "S", "M"},
		Slug:        "women_cropped_puffer_jacket",
		Tags:        []string{"hoodie"},
		Gender:      "women",
	},
	{
		Title:       "Kids Cybertruck Long Sleeve Tee",
		Description: "Designed to fit the little ones in your life, the Kids Cybertruck Long Sleeve Tee features a graffiti-style illustration of our Cybertruck wordmark.",
		Images:      []string{"1742702-00-A_0_2000.jpg", "1742702-00-A_1.jpg"},
		Stock:       10,
		Price:       30,
		Sizes:       []string{"XS", "S", "M"},
		Slug:        "kids_cybertruck_long_sleeve_tee",
		Tags:        []string{"shirt"},
		Gender:      "kid",
	},
	{
		Title:       "Unisex Turbine Zip Up Hoodie",
		Description: "The Unisex Turbine Zip Up Hoodie is made from a soft cotton blend and features a subtle logo on the chest.",
		Images:      []string{"1741416-00-A_0_2000.jpg"},
		Stock:       15,
		Price:       90,
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Slug:        "unisex_turbine_zip_up_hoodie",
		Tags:        []string{"hoodie"},
		Gender:      "unisex",
	},
}
