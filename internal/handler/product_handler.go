package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
	"storefront/internal/validator"
)

// 本番APIの共通形 {success, message}
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: msg})
}

func writeFail(c echo.Context, status int, msg string) error {
	return c.JSON(status, MessageResponse{Success: false, Message: msg})
}

// storeのエラー → ステータス
func writeError(c echo.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memory.ErrValidation), errors.Is(err, validator.ErrInvalidInput):
		return writeFail(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, validator.ErrWeakPassword):
		return writeFail(c, http.StatusBadRequest, "Password must be at least 6 characters")
	case errors.Is(err, memory.ErrInvalidCredentials):
		//401にするとクライアントがセッションを消すので400
		return writeFail(c, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, memory.ErrInvalidOTP):
		return writeFail(c, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, memory.ErrOutOfStock):
		return writeFail(c, http.StatusBadRequest, "Not enough stock")
	case errors.Is(err, memory.ErrConflict):
		return writeFail(c, http.StatusConflict, "User already exists")
	case errors.Is(err, memory.ErrNotFound):
		return writeFail(c, http.StatusNotFound, "Not found")
	default:
		return writeFail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// /product の公開API
type ProductHandler struct {
	store *memory.Store
}

// DI
func NewProductHandler(store *memory.Store) *ProductHandler {
	return &ProductHandler{store: store}
}

type productListResponse struct {
	Success    bool             `json:"success"`
	Data       []model.Product  `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

type productDetailResponse struct {
	Success bool          `json:"success"`
	Product model.Product `json:"product"`
}

// 商品のルートを登録（tokenがあればInWishlistを埋める）
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, secret string) {
	e.GET("/product", h.get, middleware.OptionalAuthJWT(secret))
}

// productId があれば詳細、無ければ一覧
func (h *ProductHandler) get(c echo.Context) error {
	userID, _ := middleware.UserID(c)

	if id := c.QueryParam("productId"); id != "" {
		p, err := h.store.Product(id, userID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, productDetailResponse{Success: true, Product: p})
	}

	page, err := intParam(c, "page", 1)
	if err != nil {
		return writeFail(c, http.StatusBadRequest, "invalid page")
	}
	limit, err := intParam(c, "limit", 10)
	if err != nil {
		return writeFail(c, http.StatusBadRequest, "invalid limit")
	}

	items, pg := h.store.Products(memory.ProductFilter{
		Page:       page,
		Limit:      limit,
		Search:     c.QueryParam("search"),
		PriceOrder: c.QueryParam("price_order"),
		Brand:      c.QueryParam("brand"),
		Category:   c.QueryParam("category"),
		Rating:     c.QueryParam("rating"),
	}, userID)

	return c.JSON(http.StatusOK, productListResponse{Success: true, Data: items, Pagination: pg})
}

func intParam(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
