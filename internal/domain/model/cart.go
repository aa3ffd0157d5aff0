package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartAggregate はサーバーが計算したカート（cartAggregation[0]）。
// 合計・支払額はクライアントで計算しない。
type CartAggregate struct {
	ID             string          `json:"_id"`
	UserID         string          `json:"userId"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	AppliedCoupon  string          `json:"appliedCoupon,omitempty"`
	PayableAmount  decimal.Decimal `json:"payableAmount"`
	ProductDetails []Product       `json:"productDetails"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// カートの明細（表示用）
type CartLine struct {
	ProductID string
	Name      string
	Image     string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// 明細一覧。単価はitemPriceを優先し、無ければprice。
func (c CartAggregate) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.ProductDetails))
	for _, p := range c.ProductDetails {
		unit := p.Price
		if p.ItemPrice != nil {
			unit = *p.ItemPrice
		}
		out = append(out, CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Thumbnail(),
			Quantity:  p.Quantity,
			UnitPrice: unit,
		})
	}
	return out
}

// 確定済みの数量（無ければ0）
func (c CartAggregate) QuantityOf(productID string) int64 {
	for _, p := range c.ProductDetails {
		if p.ID == productID {
			return p.Quantity
		}
	}
	return 0
}

func (c CartAggregate) IsEmpty() bool {
	return len(c.ProductDetails) == 0
}

// 支払額が合計を超えていないか
func (c CartAggregate) PayableWithinTotal() bool {
	return c.PayableAmount.LessThanOrEqual(c.TotalPrice)
}
