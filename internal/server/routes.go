package server

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/handler"
	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
)

// RegisterRoutes は全ハンドラを登録する。
func RegisterRoutes(e *echo.Echo, secret string, store *memory.Store) {
	//ログイン必須のルートに付ける
	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(secret),
		middleware.TokenVersionGuard(store),
	}

	handler.NewAuthHandler(store, secret).RegisterRoutes(e, auth...)
	handler.NewProductHandler(store).RegisterRoutes(e, secret)
	handler.NewCartHandler(store).RegisterRoutes(e, auth...)
	handler.NewWishlistHandler(store).RegisterRoutes(e, auth...)
	handler.NewAddressHandler(store).RegisterRoutes(e, auth...)

	//テスト用の管理API（admin roleのみ）
	admin := append(auth[:len(auth):len(auth)], middleware.AdminRoleGuard())
	handler.NewAdminHandler(store).RegisterRoutes(e, admin...)
}
