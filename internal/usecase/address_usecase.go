package usecase

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AddressUsecase struct {
	addrRepo repo.AddressRepository
}

// DI
func NewAddressUsecase(addrRepo repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addrRepo: addrRepo}
}

func (u *AddressUsecase) List(ctx context.Context) (model.AddressBook, error) {
	return u.addrRepo.List(ctx)
}

// Add は複数件まとめて登録できる
func (u *AddressUsecase) Add(ctx context.Context, in []repo.AddressInput) (string, error) {
	if len(in) == 0 {
		return "", fmt.Errorf("%w: no address", ErrValidation)
	}
	for i := range in {
		if err := normalizeAddress(&in[i]); err != nil {
			return "", err
		}
	}
	return u.addrRepo.Add(ctx, in)
}

func (u *AddressUsecase) Update(ctx context.Context, addressID string, in repo.AddressInput) (string, error) {
	if strings.TrimSpace(addressID) == "" {
		return "", fmt.Errorf("%w: address id is required", ErrValidation)
	}
	if err := normalizeAddress(&in); err != nil {
		return "", err
	}
	return u.addrRepo.Update(ctx, addressID, in)
}

func (u *AddressUsecase) Delete(ctx context.Context, addressID string) (string, error) {
	if strings.TrimSpace(addressID) == "" {
		return "", fmt.Errorf("%w: address id is required", ErrValidation)
	}
	return u.addrRepo.Delete(ctx, addressID)
}

// 必須チェックと前後空白の除去
func normalizeAddress(in *repo.AddressInput) error {
	in.FullAddress = strings.TrimSpace(in.FullAddress)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	if in.FullAddress == "" || in.City == "" || in.State == "" || in.Pin <= 0 {
		return fmt.Errorf("%w: fullAddress, city, state and pin are required", ErrValidation)
	}
	return nil
}
