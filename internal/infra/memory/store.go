// Package memory はスタブAPI用のインメモリ実装。
// 実サーバーの業務ルールは持たず、APIの形が分かる程度の振る舞いだけ。
package memory

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain/model"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOutOfStock         = errors.New("out of stock")
	ErrInvalidOTP         = errors.New("invalid otp")
)

// bcryptのコスト（スタブなので低め）
const passwordCost = bcrypt.MinCost

type userRecord struct {
	user         model.User
	passwordHash []byte
	tokenVersion int
}

type cartRow struct {
	productID string
	qty       int64
}

type wishRow struct {
	id        string
	productID string
	createdAt time.Time
}

type coupon struct {
	code     string
	discount decimal.Decimal
}

// Store はユーザー・商品・カート・ウィッシュリスト・住所を持つ。
type Store struct {
	mu sync.Mutex

	users  map[string]*userRecord // id →
	emails map[string]string      // email → id

	products []model.Product

	carts     map[string][]cartRow
	cartIDs   map[string]string
	coupons   map[string]coupon
	wishlists map[string][]wishRow
	addresses map[string]*model.AddressBook

	otps     map[string]int
	verified map[string]bool

	now    func() time.Time
	newID  func() string
	newOTP func() (int, error)
}

func NewStore() *Store {
	return &Store{
		users:     map[string]*userRecord{},
		emails:    map[string]string{},
		carts:     map[string][]cartRow{},
		cartIDs:   map[string]string{},
		coupons:   map[string]coupon{},
		wishlists: map[string][]wishRow{},
		addresses: map[string]*model.AddressBook{},
		otps:      map[string]int{},
		verified:  map[string]bool{},
		now:       time.Now,
		newID:     uuid.NewString,
		newOTP:    randomOTP,
	}
}

// 4桁のOTP
func randomOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 1000, nil
}

// 会員登録の入力
type NewUser struct {
	Name        string
	Email       string
	Gender      string
	Phone       string
	Role        string
	Password    string
	DateOfBirth string
}

// CreateUser はパスワードをbcryptで保存する。
func (s *Store) CreateUser(in NewUser) (model.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return model.User{}, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[email]; ok {
		return model.User{}, ErrConflict
	}

	role := in.Role
	if role == "" {
		role = "user"
	}
	u := model.User{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		Role:        role,
		Gender:      in.Gender,
		Phone:       model.FlexString(in.Phone),
		DateOfBirth: in.DateOfBirth,
	}
	s.users[u.ID] = &userRecord{user: u, passwordHash: hash}
	s.emails[email] = u.ID
	return u, nil
}

// Login はユーザーと現在のtoken versionを返す。
func (s *Store) Login(email string, password string) (model.User, int, error) {
	s.mu.Lock()
	rec, ok := s.userByEmail(email)
	var snap userRecord
	if ok {
		snap = *rec
	}
	s.mu.Unlock()
	if !ok {
		return model.User{}, 0, ErrInvalidCredentials
	}

	//bcryptは遅いのでロックの外で比較する
	if err := bcrypt.CompareHashAndPassword(snap.passwordHash, []byte(password)); err != nil {
		return model.User{}, 0, ErrInvalidCredentials
	}
	return snap.user, snap.tokenVersion, nil
}

func (s *Store) User(userID string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return rec.user, nil
}

// TokenVersion はパスワード変更のたびに増える。
func (s *Store) TokenVersion(userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return rec.tokenVersion, nil
}

// IssueOTP は登録済みのメールにだけ発行する。
func (s *Store) IssueOTP(email string) (int, error) {
	otp, err := s.newOTP()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userByEmail(email); !ok {
		return 0, ErrNotFound
	}
	key := normalizeEmail(email)
	s.otps[key] = otp
	delete(s.verified, key)
	return otp, nil
}

func (s *Store) VerifyOTP(email string, otp int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(email)
	want, ok := s.otps[key]
	if !ok || want != otp {
		return ErrInvalidOTP
	}
	delete(s.otps, key)
	s.verified[key] = true
	return nil
}

// ResetPassword はOTP確認済みのときだけ通す。
func (s *Store) ResetPassword(email string, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(email)
	if !s.verified[key] {
		return ErrInvalidOTP
	}
	rec, ok := s.userByEmail(email)
	if !ok {
		return ErrNotFound
	}
	rec.passwordHash = hash
	rec.tokenVersion++
	delete(s.verified, key)
	return nil
}

// ChangePassword は成功したら既存のtokenを無効にする。
func (s *Store) ChangePassword(userID string, oldPassword string, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}

	s.mu.Lock()
	rec, ok := s.users[userID]
	var current []byte
	if ok {
		current = rec.passwordHash
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword(current, []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.passwordHash = hash
	rec.tokenVersion++
	return nil
}

// 呼び出し側でロックを持つこと
func (s *Store) userByEmail(email string) (*userRecord, bool) {
	id, ok := s.emails[normalizeEmail(email)]
	if !ok {
		return nil, false
	}
	rec, ok := s.users[id]
	return rec, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
