package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。カート明細では quantity / itemPrice も埋まる。
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Image       []string        `json:"image,omitempty"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	AvgRating   float64         `json:"avgRating"`
	RatingCount int64           `json:"ratingCount,omitempty"`
	InWishlist  bool            `json:"InWishlist,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// カート集計のときだけ
	Quantity  int64            `json:"quantity,omitempty"`
	ItemPrice *decimal.Decimal `json:"itemPrice,omitempty"`
}

// 先頭の画像（無ければ空）
func (p Product) Thumbnail() string {
	if len(p.Image) == 0 {
		return ""
	}
	return p.Image[0]
}

type Pagination struct {
	TotalDocuments int64 `json:"totalDocuments"`
	Page           int   `json:"page"`
	Limit          int   `json:"limit"`
	TotalPages     int   `json:"totalPages"`
}

// 商品一覧の1ページ
type ProductPage struct {
	Items      []Product
	Pagination *Pagination
}
