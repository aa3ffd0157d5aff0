package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type WishlistRepository interface {
	List(ctx context.Context) ([]model.WishlistEntry, error)
	Add(ctx context.Context, productID string) (string, error)
	Delete(ctx context.Context, productID string) (string, error)
}
