package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DB（session_entries）にセッションを保存する。
type SessionGormRepository struct {
	db *gorm.DB
}

// DI
func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

var _ repo.SessionStore = (*SessionGormRepository)(nil)

// テーブル作成
func (r *SessionGormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.SessionEntry{})
}

// キーの値を取得
func (r *SessionGormRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var e model.SessionEntry

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// upsert（同じキーは上書き）
func (r *SessionGormRepository) Set(ctx context.Context, key string, value string) error {
	e := model.SessionEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

// 全削除
func (r *SessionGormRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.SessionEntry{}).Error
}
