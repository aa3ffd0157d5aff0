package memory

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// 商品一覧の検索条件（クエリそのまま）
type ProductFilter struct {
	Page       int
	Limit      int
	Search     string
	PriceOrder string // asc / desc
	Brand      string
	Category   string
	Rating     string // 最低評価
}

// AddProduct はseed用。IDが空なら採番する。
func (s *Store) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.newID()
	}
	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.products = append(s.products, p)
	return p
}

// Products は条件に合う商品とページ情報を返す。userIDがあればInWishlistを埋める。
func (s *Store) Products(f ProductFilter, userID string) ([]model.Product, model.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	minRating := 0.0
	if f.Rating != "" {
		if r, err := strconv.ParseFloat(f.Rating, 64); err == nil {
			minRating = r
		}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	matched := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if p.AvgRating < minRating {
			continue
		}
		p.InWishlist = s.inWishlist(userID, p.ID)
		matched = append(matched, p)
	}

	switch strings.ToLower(f.PriceOrder) {
	case "asc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.LessThan(matched[j].Price) })
	case "desc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.GreaterThan(matched[j].Price) })
	}

	total := len(matched)
	pg := model.Pagination{
		TotalDocuments: int64(total),
		Page:           f.Page,
		Limit:          f.Limit,
		TotalPages:     int(math.Ceil(float64(total) / float64(f.Limit))),
	}

	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []model.Product{}, pg
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], pg
}

func (s *Store) Product(productID string, userID string) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.productByID(productID)
	if !ok {
		return model.Product{}, ErrNotFound
	}
	p.InWishlist = s.inWishlist(userID, p.ID)
	return p, nil
}

// =====================
// cart
// =====================

// Cart は集計済みのカート。空ならfalse。
func (s *Store) Cart(userID string) (model.CartAggregate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.carts[userID]
	if len(rows) == 0 {
		return model.CartAggregate{}, false
	}

	out := model.CartAggregate{
		ID:     s.cartIDs[userID],
		UserID: userID,
	}
	total := decimal.Zero
	for _, r := range rows {
		p, ok := s.productByID(r.productID)
		if !ok {
			continue
		}
		unit := p.Price
		p.Quantity = r.qty
		p.ItemPrice = &unit
		p.InWishlist = s.inWishlist(userID, p.ID)
		total = total.Add(unit.Mul(decimal.NewFromInt(r.qty)))
		out.ProductDetails = append(out.ProductDetails, p)
	}

	out.TotalPrice = total
	out.PayableAmount = total
	if c, ok := s.coupons[userID]; ok {
		out.AppliedCoupon = c.code
		out.PayableAmount = decimal.Max(decimal.Zero, total.Sub(c.discount))
	}
	out.UpdatedAt = s.now()
	return out, true
}

// AddToCart は既存の数量に足す。在庫を超えたら何も変えない。
func (s *Store) AddToCart(userID string, productID string, qty int64) error {
	if productID == "" || qty < 1 {
		return ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productByID(productID)
	if !ok {
		return ErrNotFound
	}

	rows := s.carts[userID]
	for i := range rows {
		if rows[i].productID == productID {
			if rows[i].qty+qty > p.Stock {
				return ErrOutOfStock
			}
			rows[i].qty += qty
			return nil
		}
	}

	if qty > p.Stock {
		return ErrOutOfStock
	}
	if _, ok := s.cartIDs[userID]; !ok {
		s.cartIDs[userID] = s.newID()
	}
	s.carts[userID] = append(rows, cartRow{productID: productID, qty: qty})
	return nil
}

// SetCartQuantity は数量を絶対値で置き換える。0で削除。
func (s *Store) SetCartQuantity(userID string, productID string, qty int64) error {
	if productID == "" || qty < 0 {
		return ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.carts[userID]
	idx := -1
	for i := range rows {
		if rows[i].productID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	if qty == 0 {
		s.carts[userID] = append(rows[:idx], rows[idx+1:]...)
		if len(s.carts[userID]) == 0 {
			delete(s.carts, userID)
			delete(s.coupons, userID)
		}
		return nil
	}

	p, ok := s.productByID(productID)
	if !ok {
		return ErrNotFound
	}
	if qty > p.Stock {
		return ErrOutOfStock
	}
	rows[idx].qty = qty
	return nil
}

// SetStock は在庫数を置き換える。カートの数量は触らない。
func (s *Store) SetStock(productID string, stock int64) error {
	if productID == "" || stock < 0 {
		return ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == productID {
			s.products[i].Stock = stock
			s.products[i].UpdatedAt = s.now()
			return nil
		}
	}
	return ErrNotFound
}

// ApplyCoupon はカートに割引を付ける（開発・テスト用）。
func (s *Store) ApplyCoupon(userID string, code string, discount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[userID] = coupon{code: code, discount: discount}
}

// =====================
// wishlist
// =====================

func (s *Store) Wishlist(userID string) []model.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.WishlistEntry{}
	for _, w := range s.wishlists[userID] {
		p, ok := s.productByID(w.productID)
		if !ok {
			continue
		}
		p.InWishlist = true
		out = append(out, model.WishlistEntry{
			ID:             w.id,
			ProductDetails: []model.Product{p},
			CreatedAt:      w.createdAt,
			UpdatedAt:      w.createdAt,
		})
	}
	return out
}

// AddToWishlist は既に入っているものは無視する。
func (s *Store) AddToWishlist(userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range productIDs {
		if _, ok := s.productByID(id); !ok {
			return ErrNotFound
		}
	}
	for _, id := range productIDs {
		if s.inWishlist(userID, id) {
			continue
		}
		s.wishlists[userID] = append(s.wishlists[userID], wishRow{id: s.newID(), productID: id, createdAt: s.now()})
	}
	return nil
}

func (s *Store) DeleteFromWishlist(userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	drop := map[string]bool{}
	for _, id := range productIDs {
		drop[id] = true
	}
	rows := s.wishlists[userID][:0]
	for _, w := range s.wishlists[userID] {
		if !drop[w.productID] {
			rows = append(rows, w)
		}
	}
	s.wishlists[userID] = rows
	return nil
}

// 呼び出し側でロックを持つこと
func (s *Store) productByID(id string) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *Store) inWishlist(userID string, productID string) bool {
	if userID == "" {
		return false
	}
	for _, w := range s.wishlists[userID] {
		if w.productID == productID {
			return true
		}
	}
	return false
}
