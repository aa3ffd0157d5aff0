package repository

import (
	"context"
	"net/http"
	"net/url"

	"storefront/internal/apiclient"
)

// REST呼び出しの窓口（*apiclient.Client が実装）
type apiCaller interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body interface{}, out interface{}) error
	Put(ctx context.Context, path string, query url.Values, body interface{}, out interface{}) error
	Delete(ctx context.Context, path string, query url.Values, out interface{}) error
}

var _ apiCaller = (*apiclient.Client)(nil)

// 全レスポンス共通の {success, message}
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// 2xxでも success:false なら拒否扱い
func (e envelope) check(method, path string) error {
	if e.Success != nil && !*e.Success {
		return apiclient.NewRejected(method, path, http.StatusOK, e.Message)
	}
	return nil
}

// {items:[{productId, qty}]}
type cartItemPayload struct {
	ProductID string `json:"productId"`
	Qty       int64  `json:"qty"`
}

type addToCartPayload struct {
	Items []cartItemPayload `json:"items"`
}

// {productId, qty}（qty=0で削除）
type updateCartPayload struct {
	ProductID string `json:"productId"`
	Qty       int64  `json:"qty"`
}

// {items:[{productId}]}
type wishlistItemPayload struct {
	ProductID string `json:"productId"`
}

type wishlistPayload struct {
	Items []wishlistItemPayload `json:"items"`
}
