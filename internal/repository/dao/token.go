package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"unique;not null"`
	UserID    uint   `gorm:"not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

type TokenDAO struct {
	db *gorm.DB
}

func NewTokenDAO(db *gorm.DB) *TokenDAO {
	return &TokenDAO{
		db: db,
	}
}

func (d *TokenDAO) Insert(ctx context.Context, token RefreshToken) error {
	return d.db.WithContext(ctx).Create(&token).Error
}

// Exists reports whether token is stored and not yet expired.
func (d *TokenDAO) Exists(ctx context.Context, token string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("token = ? AND expires_at > ?", token, time.Now().UTC()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *TokenDAO) Delete(ctx context.Context, token string) error {
	return d.db.WithContext(ctx).Where("token = ?", token).Delete(&RefreshToken{}).Error
}

// DeleteExpired removes tokens past their expiry and reports how many went.
func (d *TokenDAO) DeleteExpired(ctx context.Context) (int64, error) {
	result := d.db.WithContext(ctx).Where("expires_at <= ?", time.Now().UTC()).Delete(&RefreshToken{})
	return result.RowsAffected, result.Error
}
