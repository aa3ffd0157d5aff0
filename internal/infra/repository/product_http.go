package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const pathProduct = "/product"

type productListResponse struct {
	envelope
	Data       []model.Product   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
}

type productDetailResponse struct {
	envelope
	Product model.Product `json:"product"`
}

type ProductHTTPRepository struct {
	api apiCaller
}

// DI
func NewProductHTTPRepository(api apiCaller) *ProductHTTPRepository {
	return &ProductHTTPRepository{api: api}
}

var _ repo.ProductRepository = (*ProductHTTPRepository)(nil)

// 商品一覧（指定した条件だけクエリに載せる）
func (r *ProductHTTPRepository) List(ctx context.Context, q repo.ProductQuery) (model.ProductPage, error) {
	var res productListResponse
	if err := r.api.Get(ctx, pathProduct, productQueryValues(q), &res); err != nil {
		return model.ProductPage{}, err
	}
	if err := res.check(http.MethodGet, pathProduct); err != nil {
		return model.ProductPage{}, err
	}

	items := res.Data
	if items == nil {
		items = []model.Product{}
	}
	return model.ProductPage{Items: items, Pagination: res.Pagination}, nil
}

// 商品詳細（/product?productId=）
func (r *ProductHTTPRepository) FindByID(ctx context.Context, productID string) (model.Product, error) {
	q := url.Values{}
	q.Set("productId", productID)

	var res productDetailResponse
	if err := r.api.Get(ctx, pathProduct, q, &res); err != nil {
		return model.Product{}, err
	}
	if err := res.check(http.MethodGet, pathProduct); err != nil {
		return model.Product{}, err
	}
	return res.Product, nil
}

func productQueryValues(q repo.ProductQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.PriceOrder != "" {
		v.Set("price_order", q.PriceOrder)
	}
	if q.Brand != "" {
		v.Set("brand", q.Brand)
	}
	if q.Rating != "" {
		v.Set("rating", q.Rating)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	return v
}
