package repository

import "context"

// セッション（token / user）を端末に永続化する窓口。
type SessionStore interface {
	//キーの値を返す。無ければ ok=false
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	//キーの値を保存（上書き）
	Set(ctx context.Context, key string, value string) error

	//全キーを削除する
	Clear(ctx context.Context) error
}
