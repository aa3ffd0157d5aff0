package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/apiclient"
	"storefront/internal/config"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"
)

// CLI 1回分の部品一式
type app struct {
	log      *zap.Logger
	auth     *usecase.AuthUsecase
	products *usecase.ProductUsecase
	address  *usecase.AddressUsecase
	cart     *usecase.CartSync
	wishlist *usecase.WishlistSync
	front    *usecase.Storefront

	//通知は並行に来るのでmuで守る
	mu sync.Mutex
	//エラー通知をもう出したか（二重に出さない）
	notified bool
}

// 設定からセッション保存先を選ぶ
func openSessionStore(ctx context.Context, cfg config.Config) (repo.SessionStore, error) {
	switch cfg.SessionDriver {
	case config.SessionDriverMemory:
		return infraRepo.NewMemorySessionStore(), nil
	case config.SessionDriverDB:
		gormDB, err := db.Connect()
		if err != nil {
			return nil, fmt.Errorf("connect session db: %w", err)
		}
		store := infraRepo.NewSessionGormRepository(gormDB)
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate session table: %w", err)
		}
		return store, nil
	default:
		return infraRepo.NewFileSessionStore(cfg.SessionFile), nil
	}
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger, notices io.Writer) (*app, error) {
	store, err := openSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sess := session.NewManager(store, log)

	client, err := apiclient.New(cfg.APIBaseURL, sess,
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	a := &app{log: log}

	//トーストの代わりにstderrへ出す
	notify := usecase.NotifierFunc(func(n usecase.Notification) {
		a.mu.Lock()
		defer a.mu.Unlock()
		if n.Level == usecase.LevelError {
			a.notified = true
		}
		fmt.Fprintf(notices, "[%s] %s\n", n.Level, n.Text)
	})

	a.auth = usecase.NewAuthUsecase(infraRepo.NewAuthHTTPRepository(client), sess, log)
	a.products = usecase.NewProductUsecase(infraRepo.NewProductHTTPRepository(client))
	a.address = usecase.NewAddressUsecase(infraRepo.NewAddressHTTPRepository(client))
	a.cart = usecase.NewCartSync(infraRepo.NewCartHTTPRepository(client), notify, log)
	a.wishlist = usecase.NewWishlistSync(infraRepo.NewWishlistHTTPRepository(client), notify, log)
	a.front = usecase.NewStorefront(a.cart, a.wishlist)
	return a, nil
}

// エラー通知を出したか
func (a *app) hadError() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notified
}

func (a *app) Close() {
	a.front.Close()
	_ = a.log.Sync()
}
