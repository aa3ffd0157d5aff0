package repository

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	pathLogin      = "/user/login"
	pathRegister   = "/user/register"
	pathSendOTP    = "/auth/send-otp"
	pathVerifyOTP  = "/auth/rest-verify-otp"
	pathForget     = "/user/forget"
	pathChangePass = "/user/change"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	envelope
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type registerResponse struct {
	envelope
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type sendOTPResponse struct {
	envelope
	OTP model.FlexString `json:"otp"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   int    `json:"otp"`
}

type forgetRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type AuthHTTPRepository struct {
	api apiCaller
}

// DI
func NewAuthHTTPRepository(api apiCaller) *AuthHTTPRepository {
	return &AuthHTTPRepository{api: api}
}

var _ repo.AuthRepository = (*AuthHTTPRepository)(nil)

func (r *AuthHTTPRepository) Login(ctx context.Context, email string, password string) (repo.LoginResult, error) {
	var res loginResponse
	if err := r.api.Post(ctx, pathLogin, loginRequest{Email: email, Password: password}, &res); err != nil {
		return repo.LoginResult{}, err
	}
	if err := res.check(http.MethodPost, pathLogin); err != nil {
		return repo.LoginResult{}, err
	}
	return repo.LoginResult{Token: res.Token, User: res.User, Message: res.Message}, nil
}

func (r *AuthHTTPRepository) Register(ctx context.Context, in repo.RegisterInput) (repo.RegisterResult, error) {
	var res registerResponse
	if err := r.api.Post(ctx, pathRegister, in, &res); err != nil {
		return repo.RegisterResult{}, err
	}
	if err := res.check(http.MethodPost, pathRegister); err != nil {
		return repo.RegisterResult{}, err
	}
	return repo.RegisterResult{Token: res.Token, User: res.User, Message: res.Message}, nil
}

func (r *AuthHTTPRepository) SendOTP(ctx context.Context, email string) (string, error) {
	var res sendOTPResponse
	if err := r.api.Post(ctx, pathSendOTP, sendOTPRequest{Email: email}, &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodPost, pathSendOTP); err != nil {
		return "", err
	}
	return string(res.OTP), nil
}

func (r *AuthHTTPRepository) VerifyOTP(ctx context.Context, email string, otp int) (string, error) {
	return r.postMessage(ctx, pathVerifyOTP, verifyOTPRequest{Email: email, OTP: otp})
}

func (r *AuthHTTPRepository) ForgetPassword(ctx context.Context, email string, newPassword string, confirmPassword string) (string, error) {
	return r.postMessage(ctx, pathForget, forgetRequest{
		Email:           email,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	})
}

func (r *AuthHTTPRepository) ChangePassword(ctx context.Context, oldPassword string, newPassword string, confirmPassword string) (string, error) {
	return r.postMessage(ctx, pathChangePass, changePasswordRequest{
		OldPassword:     oldPassword,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	})
}

// {message} だけ返すAPI用
func (r *AuthHTTPRepository) postMessage(ctx context.Context, path string, body interface{}) (string, error) {
	var res envelope
	if err := r.api.Post(ctx, path, body, &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodPost, path); err != nil {
		return "", err
	}
	return res.Message, nil
}
