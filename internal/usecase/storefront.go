package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"storefront/internal/domain/model"
)

// Storefront はログイン直後など、カートとウィッシュリストをまとめて読む画面用。
type Storefront struct {
	Cart     *CartSync
	Wishlist *WishlistSync
}

func NewStorefront(cart *CartSync, wishlist *WishlistSync) *Storefront {
	return &Storefront{Cart: cart, Wishlist: wishlist}
}

// Refresh は2つを並行で取り直す。どちらかが失敗したら最初のエラーを返す。
func (s *Storefront) Refresh(ctx context.Context) (model.CartAggregate, []model.WishlistEntry, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		cart    model.CartAggregate
		entries []model.WishlistEntry
	)
	g.Go(func() error {
		var err error
		cart, err = s.Cart.Refresh(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.Wishlist.Refresh(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return cart, entries, err
	}
	return cart, entries, nil
}

// Close は両方を切り離す。
func (s *Storefront) Close() {
	s.Cart.Close()
	s.Wishlist.Close()
}
