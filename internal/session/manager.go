// Package session はクライアント側の認証状態（token）を管理する。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// 空のtokenでは認証済みにしない
var ErrEmptyToken = errors.New("session: empty token")

// Manager は永続ストレージ上のセッションを読み書きする。
// HTTPクライアントにはDIで渡す（グローバルには持たない）。
type Manager struct {
	store repository.SessionStore
	log   *zap.Logger

	//状態遷移（書き込み）を直列化する
	mu sync.Mutex
}

func NewManager(store repository.SessionStore, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log}
}

// Token は毎回ストレージから読む。
func (m *Manager) Token(ctx context.Context) (string, bool, error) {
	tok, ok, err := m.store.Get(ctx, model.SessionKeyToken)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if !ok || tok == "" {
		return "", false, nil
	}
	return tok, true, nil
}

func (m *Manager) State(ctx context.Context) (model.SessionState, error) {
	_, ok, err := m.Token(ctx)
	if err != nil {
		return model.StateAnonymous, err
	}
	if ok {
		return model.StateAuthenticated, nil
	}
	return model.StateAnonymous, nil
}

// User はログイン時に保存したユーザーを返す。
func (m *Manager) User(ctx context.Context) (model.User, bool, error) {
	raw, ok, err := m.store.Get(ctx, model.SessionKeyUser)
	if err != nil {
		return model.User{}, false, fmt.Errorf("read user: %w", err)
	}
	if !ok || raw == "" {
		return model.User{}, false, nil
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return model.User{}, false, fmt.Errorf("decode user: %w", err)
	}
	return u, true, nil
}

// Authenticate は anonymous → authenticated。
// userを先に書き、tokenを最後に書く。途中で失敗したら全消去して anonymous に戻す。
func (m *Manager) Authenticate(ctx context.Context, token string, user *model.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	var encoded []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		encoded = b
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if encoded != nil {
		if err := m.store.Set(ctx, model.SessionKeyUser, string(encoded)); err != nil {
			m.rollback(ctx)
			return fmt.Errorf("save user: %w", err)
		}
	}

	if err := m.store.Set(ctx, model.SessionKeyToken, token); err != nil {
		m.rollback(ctx)
		return fmt.Errorf("save token: %w", err)
	}

	m.log.Info("session authenticated")
	return nil
}

// 書きかけの状態を残さない（呼び出し側のキャンセルでは止めない）
func (m *Manager) rollback(ctx context.Context) {
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.log.Error("rollback session failed", zap.Error(err))
	}
}

// Clear は authenticated → anonymous（ストレージを全消去）。
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.log.Info("session cleared")
	return nil
}
