package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 会員登録の住所（street / city / state / pin）
type RegisterAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Pin    int    `json:"pin"`
}

type RegisterInput struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Gender      string            `json:"gender"`
	Phone       int64             `json:"phone"`
	Role        string            `json:"role"`
	Password    string            `json:"password"`
	Address     []RegisterAddress `json:"address"`
	DateOfBirth string            `json:"dateOfBirth"`
}

// ログイン結果
type LoginResult struct {
	Token   string
	User    model.User
	Message string
}

// 登録結果（サーバーがtokenを返す場合もある）
type RegisterResult struct {
	Token   string
	User    *model.User
	Message string
}

// 認証系APIの窓口
type AuthRepository interface {
	Login(ctx context.Context, email string, password string) (LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (RegisterResult, error)
	SendOTP(ctx context.Context, email string) (otp string, err error)
	VerifyOTP(ctx context.Context, email string, otp int) (string, error)
	ForgetPassword(ctx context.Context, email string, newPassword string, confirmPassword string) (string, error)
	ChangePassword(ctx context.Context, oldPassword string, newPassword string, confirmPassword string) (string, error)
}
