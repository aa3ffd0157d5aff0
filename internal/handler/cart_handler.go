package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
)

// /user/cart まわりのHTTP
type CartHandler struct {
	store *memory.Store
}

// DI
func NewCartHandler(store *memory.Store) *CartHandler {
	return &CartHandler{store: store}
}

type cartItem struct {
	ProductID string `json:"productId"`
	Qty       int64  `json:"qty"`
}

type addToCartRequest struct {
	Items []cartItem `json:"items"`
}

// remove-to-cart は数量を絶対値で受ける（0で削除）
type updateCartRequest struct {
	ProductID string `json:"productId"`
	Qty       *int64 `json:"qty"`
}

type cartResponse struct {
	Success         bool                  `json:"success"`
	CartAggregation []model.CartAggregate `json:"cartAggregation"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	e.GET("/user/cart", h.getCart, auth...)
	e.POST("/user/add-to-cart", h.addToCart, auth...)
	e.POST("/user/remove-to-cart", h.updateCart, auth...)
}

// 空のカートは空配列
func (h *CartHandler) getCart(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}

	res := cartResponse{Success: true, CartAggregation: []model.CartAggregate{}}
	if cart, ok := h.store.Cart(userID); ok {
		res.CartAggregation = append(res.CartAggregation, cart)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil || len(req.Items) == 0 {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	for _, it := range req.Items {
		if err := h.store.AddToCart(userID, it.ProductID, it.Qty); err != nil {
			return writeError(c, err)
		}
	}
	return writeMessage(c, "Product added to cart!")
}

func (h *CartHandler) updateCart(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req updateCartRequest
	if err := c.Bind(&req); err != nil || req.Qty == nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	if err := h.store.SetCartQuantity(userID, req.ProductID, *req.Qty); err != nil {
		return writeError(c, err)
	}
	if *req.Qty == 0 {
		return writeMessage(c, "Product removed from cart")
	}
	return writeMessage(c, "Cart updated")
}
