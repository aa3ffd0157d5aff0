package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// サーバー側カートの窓口。
// 更新系は結果のカートを返さない（呼び出し側が取り直す）。
type CartRepository interface {
	Get(ctx context.Context) (model.CartAggregate, error)
	// POST /user/add-to-cart
	Add(ctx context.Context, productID string, qty int64) (string, error)
	// POST /user/remove-to-cart（qtyは絶対値、0で削除）
	SetQuantity(ctx context.Context, productID string, qty int64) (string, error)
}
