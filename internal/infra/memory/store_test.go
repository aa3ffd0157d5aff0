package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
)

func newSeeded(t *testing.T) (*Store, model.User, []model.Product) {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Seed())

	u, _, err := s.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)

	items, _ := s.Products(ProductFilter{Limit: 100}, "")
	require.NotEmpty(t, items)
	return s, u, items
}

func TestStore_LoginAndPasswordChange(t *testing.T) {
	s, u, _ := newSeeded(t)

	_, _, err := s.Login(DemoEmail, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	v0, err := s.TokenVersion(u.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ChangePassword(u.ID, "wrong", "new"), ErrInvalidCredentials)
	require.NoError(t, s.ChangePassword(u.ID, DemoPassword, "newpass"))

	v1, err := s.TokenVersion(u.ID)
	require.NoError(t, err)
	assert.Equal(t, v0+1, v1)

	_, _, err = s.Login(DemoEmail, "newpass")
	assert.NoError(t, err)
}

func TestStore_CreateUser_Conflict(t *testing.T) {
	s, _, _ := newSeeded(t)

	_, err := s.CreateUser(NewUser{Name: "x", Email: " DEMO@storefront.local ", Password: "p"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CreateUser(NewUser{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStore_OTPReset(t *testing.T) {
	s, _, _ := newSeeded(t)
	s.newOTP = func() (int, error) { return 4321, nil }

	assert.ErrorIs(t, s.ResetPassword(DemoEmail, "x"), ErrInvalidOTP)

	otp, err := s.IssueOTP(DemoEmail)
	require.NoError(t, err)
	assert.Equal(t, 4321, otp)

	assert.ErrorIs(t, s.VerifyOTP(DemoEmail, 1111), ErrInvalidOTP)
	require.NoError(t, s.VerifyOTP(DemoEmail, 4321))
	require.NoError(t, s.ResetPassword(DemoEmail, "reset"))

	_, _, err = s.Login(DemoEmail, "reset")
	assert.NoError(t, err)

	_, err = s.IssueOTP("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Cart(t *testing.T) {
	s, u, items := newSeeded(t)
	tee := items[0]

	_, ok := s.Cart(u.ID)
	assert.False(t, ok)

	require.NoError(t, s.AddToCart(u.ID, tee.ID, 1))
	require.NoError(t, s.AddToCart(u.ID, tee.ID, 1))

	cart, ok := s.Cart(u.ID)
	require.True(t, ok)
	assert.Equal(t, int64(2), cart.QuantityOf(tee.ID))
	assert.Equal(t, "$39.98", model.FormatMoney(cart.PayableAmount))
	assert.Equal(t, "$39.98", model.FormatMoney(cart.TotalPrice))

	s.ApplyCoupon(u.ID, "SAVE5", decimal.NewFromInt(5))
	cart, _ = s.Cart(u.ID)
	assert.Equal(t, "SAVE5", cart.AppliedCoupon)
	assert.Equal(t, "$34.98", model.FormatMoney(cart.PayableAmount))

	require.NoError(t, s.SetCartQuantity(u.ID, tee.ID, 5))
	cart, _ = s.Cart(u.ID)
	assert.Equal(t, int64(5), cart.QuantityOf(tee.ID))

	require.NoError(t, s.SetCartQuantity(u.ID, tee.ID, 0))
	_, ok = s.Cart(u.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, s.SetCartQuantity(u.ID, tee.ID, 1), ErrNotFound)
	assert.ErrorIs(t, s.AddToCart(u.ID, "missing", 1), ErrNotFound)
}

func TestStore_Cart_Stock(t *testing.T) {
	s, u, items := newSeeded(t)

	var beanie model.Product
	for _, p := range items {
		if p.Name == "Wool Beanie" {
			beanie = p
		}
	}
	require.NotEmpty(t, beanie.ID)

	require.NoError(t, s.AddToCart(u.ID, beanie.ID, 3))
	assert.ErrorIs(t, s.AddToCart(u.ID, beanie.ID, 1), ErrOutOfStock)
	assert.ErrorIs(t, s.SetCartQuantity(u.ID, beanie.ID, 4), ErrOutOfStock)

	cart, _ := s.Cart(u.ID)
	assert.Equal(t, int64(3), cart.QuantityOf(beanie.ID))
}

func TestStore_Wishlist(t *testing.T) {
	s, u, items := newSeeded(t)

	require.NoError(t, s.AddToWishlist(u.ID, []string{items[0].ID, items[1].ID}))
	require.NoError(t, s.AddToWishlist(u.ID, []string{items[0].ID}))
	assert.Len(t, s.Wishlist(u.ID), 2)

	p, err := s.Product(items[0].ID, u.ID)
	require.NoError(t, err)
	assert.True(t, p.InWishlist)

	require.NoError(t, s.DeleteFromWishlist(u.ID, []string{items[0].ID}))
	wl := s.Wishlist(u.ID)
	require.Len(t, wl, 1)
	assert.Equal(t, items[1].ID, wl[0].ProductDetails[0].ID)

	assert.ErrorIs(t, s.AddToWishlist(u.ID, []string{"missing"}), ErrNotFound)
}

func TestStore_Products_FilterSortPage(t *testing.T) {
	s, _, _ := newSeeded(t)

	got, pg := s.Products(ProductFilter{Category: "accessories", PriceOrder: "desc", Limit: 10}, "")
	require.Len(t, got, 2)
	assert.Equal(t, "Wool Beanie", got[0].Name)
	assert.Equal(t, int64(2), pg.TotalDocuments)

	got, pg = s.Products(ProductFilter{Page: 2, Limit: 2}, "")
	assert.Len(t, got, 2)
	assert.Equal(t, 3, pg.TotalPages)

	got, _ = s.Products(ProductFilter{Page: 9, Limit: 2}, "")
	assert.Empty(t, got)

	got, _ = s.Products(ProductFilter{Search: "shoe", Rating: "4"}, "")
	require.Len(t, got, 1)
	assert.Equal(t, "Running Shoes", got[0].Name)
}

func TestStore_Addresses(t *testing.T) {
	s, u, _ := newSeeded(t)

	book := s.Addresses(u.ID)
	assert.Empty(t, book.AllAddress)

	require.NoError(t, s.AddAddresses(u.ID, []model.Address{{FullAddress: "1 Main", City: "Pune", State: "MH", Pin: 411001}}))
	book = s.Addresses(u.ID)
	require.Len(t, book.AllAddress, 1)
	id := book.AllAddress[0].ID

	require.NoError(t, s.UpdateAddress(u.ID, id, model.Address{FullAddress: "2 Main", City: "Pune", State: "MH", Pin: 411002}))
	assert.Equal(t, "2 Main", s.Addresses(u.ID).AllAddress[0].FullAddress)

	assert.ErrorIs(t, s.AddAddresses(u.ID, []model.Address{{City: "x"}}), ErrValidation)
	require.NoError(t, s.DeleteAddress(u.ID, id))
	assert.ErrorIs(t, s.DeleteAddress(u.ID, id), ErrNotFound)
}
