package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	msgWishlistAdded      = "Product added to wishlist"
	msgWishlistRemoved    = "Product removed from wishlist"
	msgWishlistLoadFailed = "Failed to load wishlist. Please try again."
)

// WishlistSync はウィッシュリストの一覧と商品ごとのフラグを持つ。
// トグルはフラグだけ更新する（派生値が無いので取り直さない）。
type WishlistSync struct {
	wishlist repo.WishlistRepository
	notify   Notifier
	log      *zap.Logger
	locks    *keyedLock

	mu       sync.RWMutex
	entries  []model.WishlistEntry
	flags    map[string]bool
	detached bool
}

func NewWishlistSync(wishlist repo.WishlistRepository, notify Notifier, log *zap.Logger) *WishlistSync {
	if notify == nil {
		notify = nopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WishlistSync{
		wishlist: wishlist,
		notify:   notify,
		log:      log,
		locks:    newKeyedLock(),
		flags:    map[string]bool{},
	}
}

// Refresh は一覧を取り直してフラグを作り直す。
func (s *WishlistSync) Refresh(ctx context.Context) ([]model.WishlistEntry, error) {
	entries, err := s.wishlist.List(ctx)
	if err != nil {
		s.fail(err, msgWishlistLoadFailed)
		return s.Entries(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return s.entries, ErrDetached
	}

	flags := map[string]bool{}
	for _, e := range entries {
		for _, p := range e.ProductDetails {
			flags[p.ID] = true
		}
	}
	s.entries = entries
	s.flags = flags
	return entries, nil
}

// Toggle は現在のフラグを見て add / delete を送る。
// 成功したらそのフラグだけ反転し、新しい値を返す。
func (s *WishlistSync) Toggle(ctx context.Context, productID string, currentlyWishlisted bool) (bool, error) {
	if productID == "" {
		err := fmt.Errorf("%w: empty product", ErrValidation)
		s.fail(err, "")
		return currentlyWishlisted, err
	}

	unlock, err := s.locks.Lock(ctx, productID)
	if err != nil {
		return currentlyWishlisted, err
	}
	defer unlock()

	if s.isDetached() {
		return currentlyWishlisted, ErrDetached
	}

	var msg, okMsg string
	if currentlyWishlisted {
		okMsg = msgWishlistRemoved
		msg, err = s.wishlist.Delete(ctx, productID)
	} else {
		okMsg = msgWishlistAdded
		msg, err = s.wishlist.Add(ctx, productID)
	}
	if err != nil {
		s.fail(err, "")
		return currentlyWishlisted, err
	}

	next := !currentlyWishlisted

	s.mu.Lock()
	if s.detached {
		s.mu.Unlock()
		return currentlyWishlisted, ErrDetached
	}
	s.flags[productID] = next
	s.mu.Unlock()

	if msg == "" {
		msg = okMsg
	}
	s.notify.Notify(Notification{Level: LevelSuccess, Text: msg})
	return next, nil
}

func (s *WishlistSync) IsWishlisted(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[productID]
}

// Seed は商品一覧の InWishlist からフラグを入れる。
func (s *WishlistSync) Seed(products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.flags[p.ID] = p.InWishlist
	}
}

func (s *WishlistSync) Entries() []model.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.WishlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Products は全エントリの productDetails を平らにしたもの
func (s *WishlistSync) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Product
	for _, e := range s.entries {
		out = append(out, e.ProductDetails...)
	}
	return out
}

func (s *WishlistSync) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
}

func (s *WishlistSync) isDetached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detached
}

func (s *WishlistSync) fail(err error, fallback string) {
	if isCanceled(err) {
		return
	}
	s.log.Warn("wishlist request failed", zap.Error(err))
	s.notify.Notify(Notification{Level: LevelError, Text: failureText(err, fallback)})
}
