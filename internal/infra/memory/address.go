package memory

import (
	"strings"

	"storefront/internal/domain/model"
)

// Addresses はユーザーの住所帳（無ければ空の帳を作る）。
func (s *Store) Addresses(userID string) model.AddressBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBook(s.book(userID))
}

func (s *Store) AddAddresses(userID string, in []model.Address) error {
	if len(in) == 0 {
		return ErrValidation
	}
	for _, a := range in {
		if !validAddress(a) {
			return ErrValidation
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(userID)
	for _, a := range in {
		a.ID = s.newID()
		b.AllAddress = append(b.AllAddress, a)
	}
	return nil
}

func (s *Store) UpdateAddress(userID string, addressID string, in model.Address) error {
	if addressID == "" || !validAddress(in) {
		return ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(userID)
	for i := range b.AllAddress {
		if b.AllAddress[i].ID == addressID {
			in.ID = addressID
			b.AllAddress[i] = in
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteAddress(userID string, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.book(userID)
	for i := range b.AllAddress {
		if b.AllAddress[i].ID == addressID {
			b.AllAddress = append(b.AllAddress[:i], b.AllAddress[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// 呼び出し側でロックを持つこと
func (s *Store) book(userID string) *model.AddressBook {
	b, ok := s.addresses[userID]
	if !ok {
		b = &model.AddressBook{ID: s.newID(), UserID: userID, AllAddress: []model.Address{}}
		s.addresses[userID] = b
	}
	return b
}

func cloneBook(b *model.AddressBook) model.AddressBook {
	out := *b
	out.AllAddress = append([]model.Address{}, b.AllAddress...)
	return out
}

func validAddress(a model.Address) bool {
	return strings.TrimSpace(a.FullAddress) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		a.Pin > 0
}
