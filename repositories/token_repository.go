package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-api/models"
)

// ITokenRepository remembers revoked token ids until they expire.
type ITokenRepository interface {
	AddBlacklistedToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) ITokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) AddBlacklistedToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	blacklistedToken := models.BlacklistedToken{
		TokenID:   tokenID,
		ExpiresAt: expiresAt.Unix(),
	}
	// Revoking twice is not an error.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&blacklistedToken).Error
}

func (r *TokenRepository) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	var blacklistedToken models.BlacklistedToken
	result := r.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&blacklistedToken)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

func (r *TokenRepository) CleanExpiredTokens(ctx context.Context) (int64, error) {
	now := time.Now().Unix()
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
