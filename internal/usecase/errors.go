package usecase

import (
	"context"
	"errors"

	"storefront/internal/apiclient"
)

var (
	//入力不足（送信前に弾く）
	ErrValidation = errors.New("validation error")
	//画面が閉じた後に返ってきたレスポンス
	ErrDetached = errors.New("view detached")
	//ログイン成功なのにtokenが無い
	ErrNoToken = errors.New("login response has no token")
)

// 呼び出し側が中断したものは通知しない
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// 通知用の文言（サーバーのmessage優先）
func failureText(err error, fallback string) string {
	if errors.Is(err, ErrValidation) {
		return "Please check your input"
	}
	return apiclient.UserMessage(err, fallback)
}
