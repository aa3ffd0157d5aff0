package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 商品一覧の検索条件（空の項目は送らない）
type ProductQuery struct {
	Page       int
	Limit      int
	Search     string
	PriceOrder string
	Brand      string
	Rating     string
	Category   string
}

type ProductRepository interface {
	List(ctx context.Context, q ProductQuery) (model.ProductPage, error)
	FindByID(ctx context.Context, productID string) (model.Product, error)
}
