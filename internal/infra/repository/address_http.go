package repository

import (
	"context"
	"net/http"
	"net/url"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	// 一覧・更新・削除は末尾スラッシュ付き
	pathAddressBook = "/user/address/"
	pathAddress     = "/user/address"
)

type addressResponse struct {
	envelope
	Address model.AddressBook `json:"address"`
}

type addAddressPayload struct {
	AllAddress []repo.AddressInput `json:"allAddress"`
}

type AddressHTTPRepository struct {
	api apiCaller
}

// DI
func NewAddressHTTPRepository(api apiCaller) *AddressHTTPRepository {
	return &AddressHTTPRepository{api: api}
}

var _ repo.AddressRepository = (*AddressHTTPRepository)(nil)

// 住所帳を取得
func (r *AddressHTTPRepository) List(ctx context.Context) (model.AddressBook, error) {
	var res addressResponse
	if err := r.api.Get(ctx, pathAddressBook, nil, &res); err != nil {
		return model.AddressBook{}, err
	}
	if err := res.check(http.MethodGet, pathAddressBook); err != nil {
		return model.AddressBook{}, err
	}
	if res.Address.AllAddress == nil {
		res.Address.AllAddress = []model.Address{}
	}
	return res.Address, nil
}

// 住所を追加
func (r *AddressHTTPRepository) Add(ctx context.Context, in []repo.AddressInput) (string, error) {
	var res envelope
	if err := r.api.Post(ctx, pathAddress, addAddressPayload{AllAddress: in}, &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodPost, pathAddress); err != nil {
		return "", err
	}
	return res.Message, nil
}

// 住所を更新（addressIdはクエリ）
func (r *AddressHTTPRepository) Update(ctx context.Context, addressID string, in repo.AddressInput) (string, error) {
	var res envelope
	if err := r.api.Put(ctx, pathAddressBook, addressQuery(addressID), in, &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodPut, pathAddressBook); err != nil {
		return "", err
	}
	return res.Message, nil
}

// 住所を削除
func (r *AddressHTTPRepository) Delete(ctx context.Context, addressID string) (string, error) {
	var res envelope
	if err := r.api.Delete(ctx, pathAddressBook, addressQuery(addressID), &res); err != nil {
		return "", err
	}
	if err := res.check(http.MethodDelete, pathAddressBook); err != nil {
		return "", err
	}
	return res.Message, nil
}

func addressQuery(addressID string) url.Values {
	q := url.Values{}
	q.Set("addressId", addressID)
	return q
}
