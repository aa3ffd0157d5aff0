// Package server はスタブAPI（echo）を組み立てて起動する。
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
)

const shutdownTimeout = 5 * time.Second

// New はルート登録済みのechoを返す。httptestにもそのまま渡せる。
func New(secret string, store *memory.Store, log *zap.Logger) *echo.Echo {
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLogger(log))

	RegisterRoutes(e, secret, store)
	return e
}

// Start はctxが終わるまで待ち、終わったらgracefulに止める。
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
