package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/infra/memory"
	"storefront/internal/logger"
	"storefront/internal/server"
)

// SIGINT / SIGTERM でキャンセルされるctx
func withSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	//インメモリのストアにデモデータを入れる
	store := memory.NewStore()
	if err := store.Seed(); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}

	e := server.New(cfg.JWTSecret, store, zl)

	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}

	ctx, cancel := withSignals(context.Background())
	defer cancel()

	zl.Info("fake api listening",
		zap.String("addr", addr),
		zap.String("demo_email", memory.DemoEmail),
	)
	if err := server.Start(ctx, e, addr); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
	zl.Info("fake api stopped")
}
