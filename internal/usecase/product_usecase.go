package usecase

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 一覧の上限（サーバー側の既定に合わせる）
const (
	defaultProductLimit = 10
	maxProductLimit     = 100
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// List は page/limit を正規化してから投げる。
func (u *ProductUsecase) List(ctx context.Context, q repo.ProductQuery) (model.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultProductLimit
	}
	if q.Limit > maxProductLimit {
		q.Limit = maxProductLimit
	}

	q.Search = strings.TrimSpace(q.Search)
	q.PriceOrder = strings.ToLower(strings.TrimSpace(q.PriceOrder))
	if q.PriceOrder != "" && q.PriceOrder != "asc" && q.PriceOrder != "desc" {
		return model.ProductPage{}, fmt.Errorf("%w: price order must be asc or desc", ErrValidation)
	}

	return u.productRepo.List(ctx, q)
}

func (u *ProductUsecase) Get(ctx context.Context, productID string) (model.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return model.Product{}, fmt.Errorf("%w: product id is required", ErrValidation)
	}
	return u.productRepo.FindByID(ctx, productID)
}
