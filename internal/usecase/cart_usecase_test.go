package usecase_test

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"storefront/internal/apiclient"
	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

func cartWith(productID string, qty int64, unit string, total string, payable string) model.CartAggregate {
	price := decimal.RequireFromString(unit)
	return model.CartAggregate{
		ID:            "c1",
		TotalPrice:    decimal.RequireFromString(total),
		PayableAmount: decimal.RequireFromString(payable),
		ProductDetails: []model.Product{
			{ID: productID, Name: "Tee", Price: price, ItemPrice: &price, Quantity: qty},
		},
	}
}

// 追加後はサーバーのpayableAmountをそのまま表示する
func TestCartSync_AddItem_ShowsServerPayable(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	carts.On("Add", mock.Anything, "p1", int64(2)).Return("", nil).Once()
	carts.On("Get", mock.Anything).Return(cartWith("p1", 2, "19.99", "39.98", "39.98"), nil).Once()

	cart, err := s.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	assert.Equal(t, "$39.98", model.FormatMoney(cart.PayableAmount))
	assert.Equal(t, int64(2), cart.QuantityOf("p1"))

	got, loaded := s.Cart()
	assert.True(t, loaded)
	assert.Equal(t, "$39.98", model.FormatMoney(got.PayableAmount))

	assert.Equal(t, usecase.Notification{Level: usecase.LevelSuccess, Text: "Product added to cart!"}, rec.last())
	carts.AssertExpectations(t)
}

func TestCartSync_AddItem_ServerMessageWins(t *testing.T) {
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	carts.On("Add", mock.Anything, "p1", int64(1)).Return("Item added", nil)
	carts.On("Get", mock.Anything).Return(cartWith("p1", 1, "5", "5", "5"), nil)

	_, err := s.AddItem(context.Background(), "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, "Item added", rec.last().Text)
}

func TestCartSync_AddItem_Invalid(t *testing.T) {
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	_, err := s.AddItem(context.Background(), "p1", 0)
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = s.AddItem(context.Background(), "", 1)
	assert.ErrorIs(t, err, usecase.ErrValidation)

	carts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, usecase.LevelError, rec.last().Level)
}

// SetQuantity(p,0) と RemoveItem(p) は同じ呼び出しになる
func TestCartSync_SetQuantityZero_SameAsRemove(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	s := usecase.NewCartSync(carts, nil, nil)

	carts.On("SetQuantity", mock.Anything, "p1", int64(0)).Return("", nil).Twice()
	carts.On("Get", mock.Anything).Return(model.CartAggregate{}, nil).Twice()

	_, err := s.SetQuantity(ctx, "p1", 0)
	require.NoError(t, err)
	_, err = s.RemoveItem(ctx, "p1")
	require.NoError(t, err)

	carts.AssertExpectations(t)
	carts.AssertNumberOfCalls(t, "SetQuantity", 2)
}

func TestCartSync_SetQuantityNegative_Removes(t *testing.T) {
	carts := new(MockCartRepository)
	s := usecase.NewCartSync(carts, nil, nil)

	carts.On("SetQuantity", mock.Anything, "p1", int64(0)).Return("", nil).Once()
	carts.On("Get", mock.Anything).Return(model.CartAggregate{}, nil).Once()

	cart, err := s.SetQuantity(context.Background(), "p1", -3)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	carts.AssertExpectations(t)
}

// 失敗したら前の状態のまま、通知はサーバーのmessage
func TestCartSync_Failure_KeepsStateAndNotifies(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	before := cartWith("p1", 1, "10", "10", "10")
	carts.On("Get", mock.Anything).Return(before, nil).Once()
	_, err := s.Refresh(ctx)
	require.NoError(t, err)

	rejected := apiclient.NewRejected(http.MethodPost, "/user/remove-to-cart", http.StatusBadRequest, "Out of stock")
	carts.On("SetQuantity", mock.Anything, "p1", int64(9)).Return("", rejected).Once()

	cart, err := s.SetQuantity(ctx, "p1", 9)
	assert.ErrorIs(t, err, apiclient.ErrRejected)
	assert.Equal(t, before, cart)

	got, _ := s.Cart()
	assert.Equal(t, before, got)

	assert.Equal(t, usecase.Notification{Level: usecase.LevelError, Text: "Out of stock"}, rec.last())
	//失敗時は取り直さない
	carts.AssertNumberOfCalls(t, "Get", 1)
}

func TestCartSync_Failure_FallbackMessage(t *testing.T) {
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	netErr := &apiclient.HTTPError{Kind: apiclient.ErrNetwork, Method: http.MethodPost, Path: "/user/add-to-cart"}
	carts.On("Add", mock.Anything, "p1", int64(1)).Return("", netErr)

	_, err := s.AddItem(context.Background(), "p1", 1)
	assert.ErrorIs(t, err, apiclient.ErrNetwork)
	assert.Equal(t, apiclient.FallbackMessage, rec.last().Text)
}

func TestCartSync_Canceled_NoNotification(t *testing.T) {
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	carts.On("Get", mock.Anything).Return(model.CartAggregate{}, context.Canceled)

	_, err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.all())
}

// 画面を閉じた後のレスポンスは反映しない
func TestCartSync_DetachedDuringMutation(t *testing.T) {
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	carts.On("Add", mock.Anything, "p1", int64(1)).
		Run(func(mock.Arguments) { s.Close() }).
		Return("", nil).Once()
	carts.On("Get", mock.Anything).Return(cartWith("p1", 1, "3", "3", "3"), nil).Once()

	_, err := s.AddItem(context.Background(), "p1", 1)
	assert.ErrorIs(t, err, usecase.ErrDetached)

	_, loaded := s.Cart()
	assert.False(t, loaded)
	assert.Empty(t, rec.all())
}

func TestCartSync_DetachedBeforeMutation(t *testing.T) {
	carts := new(MockCartRepository)
	s := usecase.NewCartSync(carts, nil, nil)
	s.Close()

	_, err := s.AddItem(context.Background(), "p1", 1)
	assert.ErrorIs(t, err, usecase.ErrDetached)
	carts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

// サーバー側のカートを模した実装（同時実行数も測る）
type fakeCart struct {
	mu     sync.Mutex
	qty    map[string]int64
	active int32
	maxAct int32
}

func (f *fakeCart) Get(ctx context.Context) (model.CartAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var c model.CartAggregate
	for id, q := range f.qty {
		c.ProductDetails = append(c.ProductDetails, model.Product{ID: id, Quantity: q})
	}
	//更新の後の取り直しで1本終わる
	for {
		n := atomic.LoadInt32(&f.active)
		if n <= 0 || atomic.CompareAndSwapInt32(&f.active, n, n-1) {
			break
		}
	}
	return c, nil
}

func (f *fakeCart) Add(ctx context.Context, productID string, qty int64) (string, error) {
	return f.SetQuantity(ctx, productID, qty)
}

func (f *fakeCart) SetQuantity(ctx context.Context, productID string, qty int64) (string, error) {
	n := atomic.AddInt32(&f.active, 1)
	for {
		m := atomic.LoadInt32(&f.maxAct)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxAct, m, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	if qty == 0 {
		delete(f.qty, productID)
	} else {
		f.qty[productID] = qty
	}
	return "", nil
}

// 同じ商品への連打は1本ずつ処理され、数量が飛ばない
func TestCartSync_Step_SerializedPerProduct(t *testing.T) {
	fake := &fakeCart{qty: map[string]int64{}}
	s := usecase.NewCartSync(fake, nil, nil)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			_, err := s.Step(ctx, "p1", 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	cart, _ := s.Cart()
	assert.Equal(t, int64(5), cart.QuantityOf("p1"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.maxAct))

	//マイナスは0で止まって削除になる
	for i := 0; i < 7; i++ {
		_, err := s.Step(context.Background(), "p1", -1)
		require.NoError(t, err)
	}
	cart, _ = s.Cart()
	assert.Equal(t, int64(0), cart.QuantityOf("p1"))
	assert.True(t, cart.IsEmpty())
}

// payable > total でもサーバーの値を表示する
func TestCartSync_PayableAboveTotal_StillApplied(t *testing.T) {
	carts := new(MockCartRepository)
	s := usecase.NewCartSync(carts, nil, nil)

	odd := cartWith("p1", 1, "10", "10", "12")
	carts.On("Get", mock.Anything).Return(odd, nil)

	cart, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$12.00", model.FormatMoney(cart.PayableAmount))
}

// 一度も読めていないときは0から数えず、先にサーバーの数量を取る
func TestCartSync_Step_Unloaded_UsesServerQuantity(t *testing.T) {
	carts := new(MockCartRepository)
	s := usecase.NewCartSync(carts, nil, nil)

	carts.On("Get", mock.Anything).Return(cartWith("p1", 3, "10", "30", "30"), nil).Once()
	carts.On("SetQuantity", mock.Anything, "p1", int64(4)).Return("", nil).Once()
	carts.On("Get", mock.Anything).Return(cartWith("p1", 4, "10", "40", "40"), nil).Once()

	cart, err := s.Step(context.Background(), "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cart.QuantityOf("p1"))

	carts.AssertExpectations(t)
	carts.AssertNotCalled(t, "SetQuantity", mock.Anything, "p1", int64(1))
}

// 読み込みに失敗したら更新は送らない
func TestCartSync_Step_Unloaded_LoadFails(t *testing.T) {
	carts := new(MockCartRepository)
	rec := &recorder{}
	s := usecase.NewCartSync(carts, rec, nil)

	netErr := &apiclient.HTTPError{Kind: apiclient.ErrNetwork, Method: http.MethodGet, Path: "/user/cart"}
	carts.On("Get", mock.Anything).Return(model.CartAggregate{}, netErr).Once()

	_, err := s.Step(context.Background(), "p1", 1)
	assert.ErrorIs(t, err, apiclient.ErrNetwork)

	carts.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything)
	_, loaded := s.Cart()
	assert.False(t, loaded)
	assert.Equal(t, "Failed to load cart. Please try again.", rec.last().Text)
}

// 返したカートを書き換えても確定済みの状態は変わらない
func TestCartSync_Snapshot_IsCopy(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	s := usecase.NewCartSync(carts, nil, nil)

	carts.On("Get", mock.Anything).Return(cartWith("p1", 3, "10", "30", "30"), nil).Once()

	fresh, err := s.Refresh(ctx)
	require.NoError(t, err)
	fresh.ProductDetails[0].Quantity = 50

	snap, _ := s.Cart()
	snap.ProductDetails[0].Quantity = 99
	*snap.ProductDetails[0].ItemPrice = decimal.NewFromInt(1)

	got, _ := s.Cart()
	assert.Equal(t, int64(3), got.QuantityOf("p1"))
	assert.Equal(t, "$10.00", model.FormatMoney(got.Lines()[0].UnitPrice))

	//Stepも確定済みの3から数える
	carts.On("SetQuantity", mock.Anything, "p1", int64(4)).Return("", nil).Once()
	carts.On("Get", mock.Anything).Return(cartWith("p1", 4, "10", "40", "40"), nil).Once()
	_, err = s.Step(ctx, "p1", 1)
	require.NoError(t, err)
	carts.AssertExpectations(t)
}
