package repository

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

// プロセス内だけのセッション保存（テスト・一時利用）
type MemorySessionStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{data: map[string]string{}}
}

var _ repo.SessionStore = (*MemorySessionStore)(nil)

func (s *MemorySessionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemorySessionStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]string{}
	return nil
}
