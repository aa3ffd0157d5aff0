package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// keyedLock はキー（商品ID）ごとに1本ずつ実行させる。
// 待っている間もctxのキャンセルは効く。
type keyedLock struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	sem  *semaphore.Weighted
	refs int // 実行中＋待機中の数
}

func newKeyedLock() *keyedLock {
	return &keyedLock{slots: map[string]*lockSlot{}}
}

// Lock は取得できたら解放用の関数を返す。
func (l *keyedLock) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &lockSlot{sem: semaphore.NewWeighted(1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		l.release(key, s)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.sem.Release(1)
			l.release(key, s)
		})
	}, nil
}

func (l *keyedLock) release(key string, s *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// 使用中のキー数（テスト用）
func (l *keyedLock) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
