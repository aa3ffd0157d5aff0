package memory

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// デモ用アカウント
const (
	DemoEmail    = "demo@storefront.local"
	DemoPassword = "demo1234"

	AdminEmail    = "admin@storefront.local"
	AdminPassword = "admin1234"
)

// Seed はデモ商品とデモユーザーを入れる。
func (s *Store) Seed() error {
	products := []model.Product{
		{Name: "Classic Tee", Description: "Cotton crew neck", Price: decimal.RequireFromString("19.99"), Stock: 50, Category: "clothing", Brand: "Acme", AvgRating: 4.3, RatingCount: 120, Image: []string{"https://img.example/tee.png"}},
		{Name: "Denim Jacket", Description: "Washed blue denim", Price: decimal.RequireFromString("59.50"), Stock: 10, Category: "clothing", Brand: "Acme", AvgRating: 4.6, RatingCount: 41},
		{Name: "Running Shoes", Description: "Lightweight trainers", Price: decimal.RequireFromString("89.00"), Stock: 25, Category: "footwear", Brand: "Stride", AvgRating: 4.1, RatingCount: 77},
		{Name: "Canvas Tote", Description: "Everyday bag", Price: decimal.RequireFromString("12.00"), Stock: 100, Category: "accessories", Brand: "Carry", AvgRating: 3.9, RatingCount: 18},
		{Name: "Wool Beanie", Description: "Warm knit hat", Price: decimal.RequireFromString("15.25"), Stock: 3, Category: "accessories", Brand: "Carry", AvgRating: 4.8, RatingCount: 9},
	}
	for _, p := range products {
		s.AddProduct(p)
	}

	if _, err := s.CreateUser(NewUser{
		Name:     "Demo User",
		Email:    DemoEmail,
		Password: DemoPassword,
		Gender:   "other",
		Phone:    "9876543210",
	}); err != nil {
		return err
	}

	//在庫やクーポンを触る管理者
	_, err := s.CreateUser(NewUser{
		Name:     "Store Admin",
		Email:    AdminEmail,
		Password: AdminPassword,
		Role:     "admin",
	})
	return err
}
