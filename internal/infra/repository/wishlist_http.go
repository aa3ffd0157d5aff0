package repository

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	pathWishlist         = "/user/wishlist"
	pathAddToWishlist    = "/user/add-to-wishlist"
	pathDeleteToWishlist = "/user/delete-to-wishlist"
)

type wishlistResponse struct {
	envelope
	Data []model.WishlistEntry `json:"data"`
}

type WishlistHTTPRepository struct {
	api apiCaller
}

// DI
func NewWishlistHTTPRepository(api apiCaller) *WishlistHTTPRepository {
	return &WishlistHTTPRepository{api: api}
}

var _ repo.WishlistRepository = (*WishlistHTTPRepository)(nil)

func (r *WishlistHTTPRepository) List(ctx context.Context) ([]model.WishlistEntry, error) {
	var res wishlistResponse
	if err := r.api.Get(ctx, pathWishlist, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check(http.MethodGet, pathWishlist); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return []model.WishlistEntry{}, nil
	}
	return res.Data, nil
}

func (r *WishlistHTTPRepository) Add(ctx context.Context, productID string) (string, error) {
	return r.post(ctx, pathAddToWishlist, productID)
}

func (r *WishlistHTTPRepository) Delete(ctx context.Context, productID string) (string, error) {
	return r.post(ctx, pathDeleteToWishlist, productID)
}

func (r *WishlistHTTPRepository) post(ctx context.Context, path string, productID string) (string, error) {
	body := wishlistPayload{Items: []wishlistItemPayload{{ProductID: productID}}}

	var res envelope
	if err := r.api.Post(ctx, path, body, &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodPost, path); err != nil {
		return "", err
	}
	return res.Message, nil
}
