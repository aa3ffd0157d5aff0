package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 最新のtoken_versionを返す側（memory.Store が実装）
type TokenVersionSource interface {
	TokenVersion(userID string) (int, error)
}

// JWTのtvと保存済みのtoken_versionが一致するか確認。
func TokenVersionGuard(users TokenVersionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			current, err := users.TokenVersion(userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			//パスワード変更後の古いtokenは401
			if current != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			return next(c)
		}
	}
}

// UserID はAuthJWTが入れたユーザーID。
func UserID(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxUserIDKey).(string)
	return id, ok && id != ""
}
