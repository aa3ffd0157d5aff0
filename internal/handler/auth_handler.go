package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
	"storefront/internal/validator"
)

type AuthHandler struct {
	store  *memory.Store
	secret string
	now    func() time.Time
}

// DIコンストラクタ
func NewAuthHandler(store *memory.Store, secret string) *AuthHandler {
	return &AuthHandler{store: store, secret: secret, now: time.Now}
}

// /user/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

type registerAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Pin    int    `json:"pin"`
}

// /user/register のリクエストボディ。phoneは数値で来る。
type registerRequest struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Gender      string            `json:"gender"`
	Phone       model.FlexString  `json:"phone"`
	Role        string            `json:"role"`
	Password    string            `json:"password"`
	Address     []registerAddress `json:"address"`
	DateOfBirth string            `json:"dateOfBirth"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   int    `json:"otp"`
}

type sendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OTP     int    `json:"otp"`
}

type forgetRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type changeRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// 認証系のルート。/user/change だけtokenが要る。
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	e.POST("/user/login", h.login)
	e.POST("/user/register", h.register)
	e.POST("/auth/send-otp", h.sendOTP)
	e.POST("/auth/rest-verify-otp", h.verifyOTP)
	e.POST("/user/forget", h.forget)
	e.POST("/user/change", h.change, auth...)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validator.ValidateLogin(req.Email, req.Password); err != nil {
		return writeFail(c, http.StatusBadRequest, "Email and password are required")
	}

	user, tv, err := h.store.Login(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	token, err := middleware.IssueToken(h.secret, user.ID, user.Role, tv, h.now())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// 登録後は住所（street）を住所帳に入れてtokenも返す
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validator.ValidateRegister(req.Name, req.Email, req.Password); err != nil {
		return writeError(c, err)
	}

	user, err := h.store.CreateUser(memory.NewUser{
		Name:        req.Name,
		Email:       req.Email,
		Gender:      req.Gender,
		Phone:       string(req.Phone),
		Role:        registerRole(req.Role),
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return writeError(c, err)
	}

	if len(req.Address) > 0 {
		addrs := make([]model.Address, 0, len(req.Address))
		for _, a := range req.Address {
			addrs = append(addrs, model.Address{FullAddress: a.Street, City: a.City, State: a.State, Pin: a.Pin})
		}
		//住所が不完全でも登録自体は成功させる
		_ = h.store.AddAddresses(user.ID, addrs)
	}

	token, err := middleware.IssueToken(h.secret, user.ID, user.Role, 0, h.now())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) sendOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	otp, err := h.store.IssueOTP(req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sendOTPResponse{Success: true, Message: "OTP sent successfully", OTP: otp})
}

func (h *AuthHandler) verifyOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.store.VerifyOTP(req.Email, req.OTP); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "OTP verified successfully")
}

func (h *AuthHandler) forget(c echo.Context) error {
	var req forgetRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NewPassword != req.ConfirmPassword {
		return writeFail(c, http.StatusBadRequest, "Passwords do not match")
	}
	if err := validator.ValidatePassword(req.NewPassword); err != nil {
		return writeError(c, err)
	}
	if err := h.store.ResetPassword(req.Email, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Password updated successfully")
}

func (h *AuthHandler) change(c echo.Context) error {
	userID, found := middleware.UserID(c)
	if !found {
		return writeFail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req changeRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NewPassword != req.ConfirmPassword {
		return writeFail(c, http.StatusBadRequest, "Passwords do not match")
	}
	if err := validator.ValidatePassword(req.NewPassword); err != nil {
		return writeError(c, err)
	}

	if err := h.store.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, "Password changed successfully")
}

// adminは登録APIでは作らない
func registerRole(role string) string {
	if role == middleware.RoleAdmin {
		return "user"
	}
	return role
}
