package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
)

type AddressHandler struct {
	store *memory.Store
}

func NewAddressHandler(store *memory.Store) *AddressHandler {
	return &AddressHandler{store: store}
}

type addressInput struct {
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pin         int    `json:"pin"`
}

func (a addressInput) toModel() model.Address {
	return model.Address{FullAddress: a.FullAddress, City: a.City, State: a.State, Pin: a.Pin}
}

type addAddressRequest struct {
	AllAddress []addressInput `json:"allAddress"`
}

type addressResponse struct {
	Success bool              `json:"success"`
	Address model.AddressBook `json:"address"`
}

// 一覧・更新・削除は末尾スラッシュ付き、追加だけ無し
func (h *AddressHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	e.GET("/user/address/", h.List, auth...)
	e.POST("/user/address", h.Create, auth...)
	e.PUT("/user/address/", h.Update, auth...)
	e.DELETE("/user/address/", h.Delete, auth...)
}

func (h *AddressHandler) List(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(http.StatusOK, addressResponse{Success: true, Address: h.store.Addresses(userID)})
}

func (h *AddressHandler) Create(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req addAddressRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	addrs := make([]model.Address, 0, len(req.AllAddress))
	for _, a := range req.AllAddress {
		addrs = append(addrs, a.toModel())
	}
	if err := h.store.AddAddresses(userID, addrs); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Address added successfully")
}

// addressId はクエリで受ける
func (h *AddressHandler) Update(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}

	id := c.QueryParam("addressId")
	if id == "" {
		return writeFail(c, http.StatusBadRequest, "addressId is required")
	}

	var req addressInput
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	if err := h.store.UpdateAddress(userID, id, req.toModel()); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Address updated successfully")
}

func (h *AddressHandler) Delete(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}

	id := c.QueryParam("addressId")
	if id == "" {
		return writeFail(c, http.StatusBadRequest, "addressId is required")
	}

	if err := h.store.DeleteAddress(userID, id); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Address deleted successfully")
}
