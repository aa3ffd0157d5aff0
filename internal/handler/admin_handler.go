package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
)

// ProductCreateRequest は /admin/products の入力です。
type ProductCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Image       []string        `json:"image"`
}

// InventoryUpdateRequest は在庫更新の入力です。
type InventoryUpdateRequest struct {
	Stock int64 `json:"stock"`
}

// CouponRequest はユーザーのカートに割引を付ける入力です。
type CouponRequest struct {
	UserID   string          `json:"userId"`
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

type productCreatedResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Product model.Product `json:"product"`
}

// /admin/products と /admin/inventory と /admin/coupon をまとめる
type AdminHandler struct {
	store *memory.Store
}

// DI
func NewAdminHandler(store *memory.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

// adminを登録。guardにはAuthJWT〜AdminRoleGuardを渡す。
func (h *AdminHandler) RegisterRoutes(e *echo.Echo, guard ...echo.MiddlewareFunc) {
	admin := e.Group("/admin", guard...)

	admin.POST("/products", h.createProduct)
	admin.PUT("/inventory/:product_id", h.updateInventory)
	admin.POST("/coupon", h.applyCoupon)
}

func (h *AdminHandler) createProduct(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" || req.Price.IsNegative() || req.Stock < 0 {
		return writeFail(c, http.StatusBadRequest, "Invalid input")
	}

	p := h.store.AddProduct(model.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Brand:       req.Brand,
		Image:       req.Image,
	})

	return c.JSON(http.StatusOK, productCreatedResponse{Success: true, Message: "Product created", Product: p})
}

func (h *AdminHandler) updateInventory(c echo.Context) error {
	productID := c.Param("product_id")

	var req InventoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	if err := h.store.SetStock(productID, req.Stock); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Stock updated")
}

func (h *AdminHandler) applyCoupon(c echo.Context) error {
	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == "" || strings.TrimSpace(req.Code) == "" || !req.Discount.IsPositive() {
		return writeFail(c, http.StatusBadRequest, "Invalid input")
	}
	if _, err := h.store.User(req.UserID); err != nil {
		return writeError(c, err)
	}

	h.store.ApplyCoupon(req.UserID, strings.TrimSpace(req.Code), req.Discount)
	return writeMessage(c, "Coupon applied")
}
