package model

import "time"

// SessionState はクライアント側の認証状態。
// anonymous → authenticated → anonymous の2状態のみ。
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticated
)

func (s SessionState) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// 永続ストレージのキー
const (
	SessionKeyToken = "token"
	SessionKeyUser  = "user"
)

// SessionEntry はDB保存時のセッション1行（key-value）。
type SessionEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}
