package repository

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	pathCart         = "/user/cart"
	pathAddToCart    = "/user/add-to-cart"
	pathRemoveToCart = "/user/remove-to-cart"
)

type cartResponse struct {
	envelope
	CartAggregation []model.CartAggregate `json:"cartAggregation"`
}

type CartHTTPRepository struct {
	api apiCaller
}

// DI
func NewCartHTTPRepository(api apiCaller) *CartHTTPRepository {
	return &CartHTTPRepository{api: api}
}

var _ repo.CartRepository = (*CartHTTPRepository)(nil)

// カート取得（集計が無ければ空カート）
func (r *CartHTTPRepository) Get(ctx context.Context) (model.CartAggregate, error) {
	var res cartResponse
	if err := r.api.Get(ctx, pathCart, nil, &res); err != nil {
		return model.CartAggregate{}, err
	}
	if err := res.check(http.MethodGet, pathCart); err != nil {
		return model.CartAggregate{}, err
	}
	if len(res.CartAggregation) == 0 {
		return model.CartAggregate{}, nil
	}
	return res.CartAggregation[0], nil
}

// カートに追加
func (r *CartHTTPRepository) Add(ctx context.Context, productID string, qty int64) (string, error) {
	body := addToCartPayload{Items: []cartItemPayload{{ProductID: productID, Qty: qty}}}

	var res envelope
	if err := r.api.Post(ctx, pathAddToCart, body, &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodPost, pathAddToCart); err != nil {
		return "", err
	}
	return res.Message, nil
}

// 数量を絶対値で更新（0で削除）
func (r *CartHTTPRepository) SetQuantity(ctx context.Context, productID string, qty int64) (string, error) {
	body := updateCartPayload{ProductID: productID, Qty: qty}

	var res envelope
	if err := r.api.Post(ctx, pathRemoveToCart, body, &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodPost, pathRemoveToCart); err != nil {
		return "", err
	}
	return res.Message, nil
}
