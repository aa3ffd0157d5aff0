package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// 失敗の種類
var (
	//レスポンスが無い（通信エラー・タイムアウト）
	ErrNetwork = errors.New("network error")
	//401 セッション無効
	ErrUnauthorized = errors.New("unauthorized")
	//4xx 入力をサーバーが拒否
	ErrRejected = errors.New("rejected")
	//5xx など
	ErrServer = errors.New("server error")
)

// 画面に出すデフォルト文言
const FallbackMessage = "Something went wrong"

// HTTPError はAPI呼び出しの失敗。Kindは上のsentinelのどれか。
type HTTPError struct {
	Kind    error
	Status  int    // レスポンスが無いときは0
	Message string // サーバーの message（あれば）
	Method  string
	Path    string
	Err     error
}

func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v: %s", e.Method, e.Path, e.Kind, msg)
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, msg)
}

// errors.Is(err, ErrUnauthorized) などで判定できる
func (e *HTTPError) Unwrap() []error {
	out := []error{e.Kind}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// NewRejected は2xxでも success:false だったときに使う。
func NewRejected(method, path string, status int, message string) error {
	return &HTTPError{
		Kind:    ErrRejected,
		Status:  status,
		Message: message,
		Method:  method,
		Path:    path,
	}
}

// ステータスコード → 種類
func kindFromStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status >= 400 && status < 500:
		return ErrRejected
	default:
		return ErrServer
	}
}

// UserMessage は通知に出す文言。サーバーの message を優先する。
func UserMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = FallbackMessage
	}
	if he, ok := AsHTTPError(err); ok && he.Message != "" {
		return he.Message
	}
	return fallback
}
