// Package apiclient は全API呼び出しで共有するHTTPクライアント。
// ベースURL・タイムアウト・token付与・401時のセッション破棄をまとめて持つ。
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTimeout = 20 * time.Second

	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-Id"
)

// TokenSource はセッションの読み取りと破棄（session.Manager が実装）。
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// Doer は *http.Client と同じ形（テストで差し替える）
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL string
	http    Doer
	tokens  TokenSource
	timeout time.Duration
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New はベースURLとセッションを受け取ってクライアントを作る。
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base url %q", baseURL)
	}
	if tokens == nil {
		return nil, errors.New("apiclient: token source is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, query url.Values, body interface{}, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, query, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, query, nil, out)
}

// Do は1回だけリクエストを送る（リトライしない）。
// 2xxならoutにJSONをデコードする。それ以外は *HTTPError を返す。
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullURL := c.URL(path, query)
	reqID := uuid.NewString()
	log := c.log.With(
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.String("request_id", reqID),
	)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)

	if err := c.attachToken(ctx, req); err != nil {
		return err
	}

	log.Debug("request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return &HTTPError{Kind: ErrNetwork, Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("read body failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return &HTTPError{Kind: ErrNetwork, Status: resp.StatusCode, Method: method, Path: path, Err: err}
	}

	log.Debug("response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.onFailure(ctx, log, method, path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &HTTPError{
			Kind:   ErrServer,
			Status: resp.StatusCode,
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// URL はベースURL + path + query（pathの先頭に / を付ける）
func (c *Client) URL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// 保存済みtokenをそのままAuthorizationに入れる（Bearerは付けない）
func (c *Client) attachToken(ctx context.Context, req *http.Request) error {
	tok, ok, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("apiclient: read session: %w", err)
	}
	if ok {
		req.Header.Set(HeaderAuthorization, tok)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) onFailure(ctx context.Context, log *zap.Logger, method, path string, status int, data []byte) error {
	he := &HTTPError{
		Kind:    kindFromStatus(status),
		Status:  status,
		Message: serverMessage(data),
		Method:  method,
		Path:    path,
	}
	log.Warn("response rejected", zap.Int("status", status), zap.String("message", he.Message))

	//401はセッションを全消去する（画面遷移は呼び出し側）
	//呼び出し元がキャンセル済みでも消す
	if status == http.StatusUnauthorized {
		if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
			log.Error("clear session failed", zap.Error(err))
		}
	}
	return he
}

func serverMessage(data []byte) string {
	var b errorBody
	if err := json.Unmarshal(data, &b); err != nil {
		return ""
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}
