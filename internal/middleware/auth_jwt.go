package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // string
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
)

// tokenの有効期限
const TokenTTL = 7 * 24 * time.Hour

// IssueToken はHS256で署名したtokenを作る。
func IssueToken(secret string, userID string, role string, tokenVersion int, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"tv":   tokenVersion,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AuthJWT はAuthorizationヘッダのtokenをそのまま検証する（Bearerは付かない）。
func AuthJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			userID, err := parseString(claims["sub"])
			if err != nil || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			role, _ := parseString(claims["role"])

			tv, err := parseInt(claims["tv"])
			if err != nil || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, role)
			c.Set(CtxTokenVersionKey, tv)

			return next(c)
		}
	}
}

// 本番APIのエラー形式 {success:false, message}
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

func parseInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return 0, err
		}
		return int(i64), nil
	default:
		return 0, errors.New("invalid int")
	}
}

// OptionalAuthJWT はヘッダが無ければそのまま通す（公開APIでInWishlistを埋める用）。
func OptionalAuthJWT(secret string) echo.MiddlewareFunc {
	auth := AuthJWT(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withAuth := auth(next)
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			return withAuth(c)
		}
	}
}
