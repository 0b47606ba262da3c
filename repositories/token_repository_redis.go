package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenRepository keeps revoked token ids as keys that expire
// together with the token.
type RedisTokenRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenRepository(client *redis.Client, prefix string) ITokenRepository {
	return &RedisTokenRepository{client: client, prefix: prefix}
}

func (r *RedisTokenRepository) AddBlacklistedToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.prefix+tokenID, 1, ttl).Err()
}

func (r *RedisTokenRepository) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CleanExpiredTokens is a no-op; redis expires the keys itself.
func (r *RedisTokenRepository) CleanExpiredTokens(ctx context.Context) (int64, error) {
	return 0, nil
}
