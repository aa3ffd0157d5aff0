package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 通知の既定文言
const (
	msgCartAdded      = "Product added to cart!"
	msgCartUpdated    = "Cart updated"
	msgCartRemoved    = "Product removed from cart"
	msgCartLoadFailed = "Failed to load cart. Please try again."
)

// CartSync はカート画面のローカル状態をサーバーと揃える。
// 更新のたびにカートを丸ごと取り直し、ローカルで差分計算はしない。
// 同じ商品への更新は「更新＋取り直し」が終わるまで次を始めない。
type CartSync struct {
	carts  repo.CartRepository
	notify Notifier
	log    *zap.Logger
	locks  *keyedLock

	mu       sync.RWMutex
	cart     model.CartAggregate
	loaded   bool
	detached bool
}

func NewCartSync(carts repo.CartRepository, notify Notifier, log *zap.Logger) *CartSync {
	if notify == nil {
		notify = nopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CartSync{
		carts:  carts,
		notify: notify,
		log:    log,
		locks:  newKeyedLock(),
	}
}

// Cart はサーバーで確定した最新のカート。
func (s *CartSync) Cart() (model.CartAggregate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart), s.loaded
}

// Close は画面が閉じたことを表す。以降のレスポンスは捨てる。
func (s *CartSync) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
}

// Refresh は GET /user/cart で丸ごと置き換える。
func (s *CartSync) Refresh(ctx context.Context) (model.CartAggregate, error) {
	cart, err := s.carts.Get(ctx)
	if err != nil {
		s.fail(err, msgCartLoadFailed)
		return s.current(), err
	}
	return s.apply(cart)
}

// AddItem は追加してから取り直す（ローカルには足さない）。
func (s *CartSync) AddItem(ctx context.Context, productID string, qty int64) (model.CartAggregate, error) {
	if productID == "" || qty < 1 {
		return s.current(), s.invalid(fmt.Errorf("%w: product=%q qty=%d", ErrValidation, productID, qty))
	}

	return s.withProduct(ctx, productID, func(ctx context.Context) (model.CartAggregate, error) {
		return s.mutate(ctx, msgCartAdded, func(ctx context.Context) (string, error) {
			return s.carts.Add(ctx, productID, qty)
		})
	})
}

// SetQuantity は数量を絶対値で送る。0以下は RemoveItem と同じ。
func (s *CartSync) SetQuantity(ctx context.Context, productID string, qty int64) (model.CartAggregate, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, productID)
	}
	if productID == "" {
		return s.current(), s.invalid(fmt.Errorf("%w: empty product", ErrValidation))
	}

	return s.withProduct(ctx, productID, func(ctx context.Context) (model.CartAggregate, error) {
		return s.setQuantityLocked(ctx, productID, qty)
	})
}

// RemoveItem は qty=0 で更新する。
func (s *CartSync) RemoveItem(ctx context.Context, productID string) (model.CartAggregate, error) {
	if productID == "" {
		return s.current(), s.invalid(fmt.Errorf("%w: empty product", ErrValidation))
	}

	return s.withProduct(ctx, productID, func(ctx context.Context) (model.CartAggregate, error) {
		return s.setQuantityLocked(ctx, productID, 0)
	})
}

// Step は +/− ボタン用。確定済みの数量から目標値を出して絶対値で送る。
func (s *CartSync) Step(ctx context.Context, productID string, delta int64) (model.CartAggregate, error) {
	if productID == "" {
		return s.current(), s.invalid(fmt.Errorf("%w: empty product", ErrValidation))
	}

	return s.withProduct(ctx, productID, func(ctx context.Context) (model.CartAggregate, error) {
		//一度も読めていなければ先に取り直す（0から数えない）
		if !s.isLoaded() {
			cart, err := s.carts.Get(ctx)
			if err != nil {
				s.fail(err, msgCartLoadFailed)
				return s.current(), err
			}
			if _, err := s.apply(cart); err != nil {
				return s.current(), err
			}
		}

		//ロック取得後に読むので前の更新の結果が反映済み
		target := s.current().QuantityOf(productID) + delta
		if target < 0 {
			target = 0
		}
		return s.setQuantityLocked(ctx, productID, target)
	})
}

func (s *CartSync) setQuantityLocked(ctx context.Context, productID string, qty int64) (model.CartAggregate, error) {
	okMsg := msgCartUpdated
	if qty == 0 {
		okMsg = msgCartRemoved
	}
	return s.mutate(ctx, okMsg, func(ctx context.Context) (string, error) {
		return s.carts.SetQuantity(ctx, productID, qty)
	})
}

// 商品ごとに直列化して実行
func (s *CartSync) withProduct(ctx context.Context, productID string, fn func(context.Context) (model.CartAggregate, error)) (model.CartAggregate, error) {
	unlock, err := s.locks.Lock(ctx, productID)
	if err != nil {
		return s.current(), err
	}
	defer unlock()

	return fn(ctx)
}

// 更新 → 取り直し → 反映。失敗したら状態は変えない。
func (s *CartSync) mutate(ctx context.Context, okMsg string, call func(context.Context) (string, error)) (model.CartAggregate, error) {
	if s.isDetached() {
		return s.current(), ErrDetached
	}

	msg, err := call(ctx)
	if err != nil {
		s.fail(err, "")
		return s.current(), err
	}

	cart, err := s.carts.Get(ctx)
	if err != nil {
		s.fail(err, msgCartLoadFailed)
		return s.current(), err
	}

	cart, err = s.apply(cart)
	if err != nil {
		return cart, err
	}

	if msg == "" {
		msg = okMsg
	}
	s.notify.Notify(Notification{Level: LevelSuccess, Text: msg})
	return cart, nil
}

// サーバーのカートで丸ごと置き換える
func (s *CartSync) apply(cart model.CartAggregate) (model.CartAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detached {
		s.log.Debug("discard cart response for detached view")
		return cloneCart(s.cart), ErrDetached
	}

	if !cart.PayableWithinTotal() {
		s.log.Warn("payable amount exceeds total",
			zap.String("total", cart.TotalPrice.String()),
			zap.String("payable", cart.PayableAmount.String()),
		)
	}

	s.cart = cloneCart(cart)
	s.loaded = true
	return cloneCart(cart), nil
}

func (s *CartSync) current() model.CartAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart)
}

func (s *CartSync) isLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// 呼び出し側が書き換えても確定済みの状態に響かないようにコピーする
func cloneCart(c model.CartAggregate) model.CartAggregate {
	if c.ProductDetails == nil {
		return c
	}
	items := make([]model.Product, len(c.ProductDetails))
	for i, p := range c.ProductDetails {
		if p.Image != nil {
			p.Image = append([]string(nil), p.Image...)
		}
		if p.ItemPrice != nil {
			price := *p.ItemPrice
			p.ItemPrice = &price
		}
		items[i] = p
	}
	c.ProductDetails = items
	return c
}

func (s *CartSync) isDetached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detached
}

func (s *CartSync) invalid(err error) error {
	s.fail(err, "")
	return err
}

func (s *CartSync) fail(err error, fallback string) {
	if isCanceled(err) {
		return
	}
	s.log.Warn("cart request failed", zap.Error(err))
	s.notify.Notify(Notification{Level: LevelError, Text: failureText(err, fallback)})
}
