package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const RoleAdmin = "admin"

// contextのroleがadminかどうかを確認します。
// AuthJWT の後に付ける。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			//userは拒否、adminだけ許可
			if role != RoleAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("Admin only"))
			}

			return next(c)
		}
	}
}
