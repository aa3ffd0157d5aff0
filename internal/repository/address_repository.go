package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 住所の入力（fullAddress / city / state / pin）
type AddressInput struct {
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pin         int    `json:"pin"`
}

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	//ユーザーの住所帳を返す
	List(ctx context.Context) (model.AddressBook, error)

	//住所をまとめて追加
	Add(ctx context.Context, in []AddressInput) (string, error)

	//住所の更新
	Update(ctx context.Context, addressID string, in AddressInput) (string, error)

	//住所の削除
	Delete(ctx context.Context, addressID string) (string, error)
}
