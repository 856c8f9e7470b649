package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/pkg/logging"
)

type seedProduct struct {
	name        string
	description string
	price       string
	category    string
	imageURL    string
}

var seedCategories = []string{"Stationery", "Plush Toys", "Beauty", "Home Decor"}

var seedProducts = []seedProduct{
	{
		name:        "Kawaii Cat Pen",
		description: "Cute and comfy cat-shaped pen for your class notes or journal. Writes smoothly in blue ink.",
		price:       "79.00",
		category:    "Stationery",
		imageURL:    "https://images.unsplash.com/photo-1506744038136-46273834b3fb?auto=format&fit=crop&w=400&q=80",
	},
	{
		name:        "Pastel Bunny Plush",
		description: "Soft, huggable bunny plush with pastel colors. Perfect for gifts and cozy naps.",
		price:       "349.00",
		category:    "Plush Toys",
		imageURL:    "https://images.pexels.com/photos/1462636/pexels-photo-1462636.jpeg?auto=compress&w=400",
	},
	{
		name:        "Lavender Hand Cream",
		description: "Light lavender-scented hand cream. Moisturizes and softens for silky smooth hands.",
		price:       "139.00",
		category:    "Beauty",
		imageURL:    "https://images.pexels.com/photos/2270834/pexels-photo-2270834.jpeg?auto=compress&w=400",
	},
	{
		name:        "Cloud Pillow",
		description: "Dreamy pillow in cloud shape with smiley face. Ultra-soft for beds and sofas.",
		price:       "260.00",
		category:    "Home Decor",
		imageURL:    "https://images.unsplash.com/photo-1526178613658-3e1f28221885?auto=format&fit=crop&w=400&q=80",
	},
}

const seedStock = 100

// Seed 商品表为空时写入示例分类与商品，返回是否写入
func (s *CatalogCommandService) Seed(ctx context.Context) (bool, error) {
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	ids := make(map[string]uint, len(seedCategories))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}
	for _, name := range seedCategories {
		if _, ok := ids[name]; ok {
			continue
		}
		id, err := s.CreateCategory(ctx, CreateCategoryCommand{Name: name})
		if err != nil {
			return false, err
		}
		ids[name] = id
	}

	for _, sp := range seedProducts {
		categoryID := ids[sp.category]
		if _, err := s.CreateProduct(ctx, CreateProductCommand{
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.RequireFromString(sp.price),
			Stock:       seedStock,
			CategoryID:  &categoryID,
			ImageURL:    sp.imageURL,
		}); err != nil {
			return false, err
		}
	}

	logging.Info(ctx, "Sample catalog seeded", "categories", len(seedCategories), "products", len(seedProducts))
	return true, nil
}
