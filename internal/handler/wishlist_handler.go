package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
)

type WishlistHandler struct {
	store *memory.Store
}

// DI
func NewWishlistHandler(store *memory.Store) *WishlistHandler {
	return &WishlistHandler{store: store}
}

type wishlistItem struct {
	ProductID string `json:"productId"`
}

type wishlistRequest struct {
	Items []wishlistItem `json:"items"`
}

type wishlistResponse struct {
	Success bool                  `json:"success"`
	Data    []model.WishlistEntry `json:"data"`
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	e.GET("/user/wishlist", h.list, auth...)
	e.POST("/user/add-to-wishlist", h.add, auth...)
	e.POST("/user/delete-to-wishlist", h.delete, auth...)
}

func (h *WishlistHandler) list(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(http.StatusOK, wishlistResponse{Success: true, Data: h.store.Wishlist(userID)})
}

func (h *WishlistHandler) add(c echo.Context) error {
	userID, ids, status, msg := h.bind(c)
	if status != 0 {
		return writeFail(c, status, msg)
	}
	if err := h.store.AddToWishlist(userID, ids); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Product added to wishlist")
}

func (h *WishlistHandler) delete(c echo.Context) error {
	userID, ids, status, msg := h.bind(c)
	if status != 0 {
		return writeFail(c, status, msg)
	}
	if err := h.store.DeleteFromWishlist(userID, ids); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Product removed from wishlist")
}

// ユーザーIDとproductIdの一覧を取り出す。失敗時はステータスと文言。
func (h *WishlistHandler) bind(c echo.Context) (string, []string, int, string) {
	userID, found := middleware.UserID(c)
	if !found {
		return "", nil, http.StatusUnauthorized, "Unauthorized"
	}

	var req wishlistRequest
	if err := c.Bind(&req); err != nil || len(req.Items) == 0 {
		return "", nil, http.StatusBadRequest, "Invalid request body"
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}
	return userID, ids, 0, ""
}
