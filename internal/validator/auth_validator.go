package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// パスワードが短い
	ErrWeakPassword = errors.New("password too short")
)

// パスワード最低文字数
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// サインアップの入力を検証
func ValidateRegister(name string, email string, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	if err := ValidateLogin(email, password); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ログインの入力を検証（長さは見ない）
func ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	return nil
}

// 新しいパスワードを検証（reset / change）
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrInvalidInput
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
