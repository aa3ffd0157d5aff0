package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

// =====================
// Mocks
// =====================

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Get(ctx context.Context) (model.CartAggregate, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(model.CartAggregate)
	return c, args.Error(1)
}

func (m *MockCartRepository) Add(ctx context.Context, productID string, qty int64) (string, error) {
	args := m.Called(ctx, productID, qty)
	return args.String(0), args.Error(1)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, productID string, qty int64) (string, error) {
	args := m.Called(ctx, productID, qty)
	return args.String(0), args.Error(1)
}

var _ repo.CartRepository = (*MockCartRepository)(nil)

type MockWishlistRepository struct{ mock.Mock }

func (m *MockWishlistRepository) List(ctx context.Context) ([]model.WishlistEntry, error) {
	args := m.Called(ctx)
	e, _ := args.Get(0).([]model.WishlistEntry)
	return e, args.Error(1)
}

func (m *MockWishlistRepository) Add(ctx context.Context, productID string) (string, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Error(1)
}

func (m *MockWishlistRepository) Delete(ctx context.Context, productID string) (string, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Error(1)
}

var _ repo.WishlistRepository = (*MockWishlistRepository)(nil)

type MockAuthRepository struct{ mock.Mock }

func (m *MockAuthRepository) Login(ctx context.Context, email string, password string) (repo.LoginResult, error) {
	args := m.Called(ctx, email, password)
	r, _ := args.Get(0).(repo.LoginResult)
	return r, args.Error(1)
}

func (m *MockAuthRepository) Register(ctx context.Context, in repo.RegisterInput) (repo.RegisterResult, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(repo.RegisterResult)
	return r, args.Error(1)
}

func (m *MockAuthRepository) SendOTP(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepository) VerifyOTP(ctx context.Context, email string, otp int) (string, error) {
	args := m.Called(ctx, email, otp)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepository) ForgetPassword(ctx context.Context, email string, newPassword string, confirmPassword string) (string, error) {
	args := m.Called(ctx, email, newPassword, confirmPassword)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepository) ChangePassword(ctx context.Context, oldPassword string, newPassword string, confirmPassword string) (string, error) {
	args := m.Called(ctx, oldPassword, newPassword, confirmPassword)
	return args.String(0), args.Error(1)
}

var _ repo.AuthRepository = (*MockAuthRepository)(nil)

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) List(ctx context.Context, q repo.ProductQuery) (model.ProductPage, error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(model.ProductPage)
	return p, args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) List(ctx context.Context) (model.AddressBook, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).(model.AddressBook)
	return b, args.Error(1)
}

func (m *MockAddressRepository) Add(ctx context.Context, in []repo.AddressInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, addressID string, in repo.AddressInput) (string, error) {
	args := m.Called(ctx, addressID, in)
	return args.String(0), args.Error(1)
}

func (m *MockAddressRepository) Delete(ctx context.Context, addressID string) (string, error) {
	args := m.Called(ctx, addressID)
	return args.String(0), args.Error(1)
}

// 通知を記録するだけ
type recorder struct {
	mu    sync.Mutex
	items []usecase.Notification
}

func (r *recorder) Notify(n usecase.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) all() []usecase.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]usecase.Notification, len(r.items))
	copy(out, r.items)
	return out
}

func (r *recorder) last() usecase.Notification {
	items := r.all()
	if len(items) == 0 {
		return usecase.Notification{}
	}
	return items[len(items)-1]
}
