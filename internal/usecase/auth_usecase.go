package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// usecaseが依存するセッションの約束（session.Manager が実装）
type SessionManager interface {
	State(ctx context.Context) (model.SessionState, error)
	User(ctx context.Context) (model.User, bool, error)
	Authenticate(ctx context.Context, token string, user *model.User) error
	Clear(ctx context.Context) error
}

type AuthUsecase struct {
	auth    repository.AuthRepository
	session SessionManager
	log     *zap.Logger
}

// DI
func NewAuthUsecase(auth repository.AuthRepository, session SessionManager, log *zap.Logger) *AuthUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthUsecase{auth: auth, session: session, log: log}
}

// Login は成功したらtokenとuserを保存してからユーザーを返す。
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	res, err := u.auth.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	if res.Token == "" {
		return model.User{}, ErrNoToken
	}

	//保存してから使う
	if err := u.session.Authenticate(ctx, res.Token, &res.User); err != nil {
		return model.User{}, err
	}

	u.log.Info("logged in", zap.String("user_id", res.User.ID))
	return res.User, nil
}

// Register はサーバーのmessageを返す。tokenが返ってきたらそのままログイン状態にする。
func (u *AuthUsecase) Register(ctx context.Context, in repository.RegisterInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return "", fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if in.Role == "" {
		in.Role = "user"
	}

	res, err := u.auth.Register(ctx, in)
	if err != nil {
		return "", err
	}

	if res.Token != "" {
		if err := u.session.Authenticate(ctx, res.Token, res.User); err != nil {
			return "", err
		}
	}
	return res.Message, nil
}

func (u *AuthUsecase) SendOTP(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}
	return u.auth.SendOTP(ctx, email)
}

func (u *AuthUsecase) VerifyOTP(ctx context.Context, email string, otp int) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || otp <= 0 {
		return "", fmt.Errorf("%w: email and otp are required", ErrValidation)
	}
	return u.auth.VerifyOTP(ctx, email, otp)
}

// ResetPassword はOTP確認後のパスワード再設定（/user/forget）。
func (u *AuthUsecase) ResetPassword(ctx context.Context, email string, newPassword string, confirmPassword string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || newPassword == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if newPassword != confirmPassword {
		return "", fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	return u.auth.ForgetPassword(ctx, email, newPassword, confirmPassword)
}

// ChangePassword は成功したらセッションを消す（再ログインさせる）。
func (u *AuthUsecase) ChangePassword(ctx context.Context, oldPassword string, newPassword string, confirmPassword string) (string, error) {
	if oldPassword == "" || newPassword == "" {
		return "", fmt.Errorf("%w: passwords are required", ErrValidation)
	}
	if newPassword != confirmPassword {
		return "", fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	msg, err := u.auth.ChangePassword(ctx, oldPassword, newPassword, confirmPassword)
	if err != nil {
		return "", err
	}

	if err := u.session.Clear(ctx); err != nil {
		return msg, err
	}
	return msg, nil
}

// Logout はローカルのセッションを消すだけ（サーバーには投げない）。
func (u *AuthUsecase) Logout(ctx context.Context) error {
	return u.session.Clear(ctx)
}

func (u *AuthUsecase) CurrentUser(ctx context.Context) (model.User, bool, error) {
	return u.session.User(ctx)
}

func (u *AuthUsecase) State(ctx context.Context) (model.SessionState, error) {
	return u.session.State(ctx)
}
