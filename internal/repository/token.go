package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/vietanh2810/meetup-api/internal/repository/dao"
)

type TokenDAO interface {
	Insert(ctx context.Context, token dao.RefreshToken) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenRepository keeps refresh tokens in Postgres.
type TokenRepository struct {
	dao TokenDAO
}

func NewTokenRepository(dao TokenDAO) *TokenRepository {
	return &TokenRepository{
		dao: dao,
	}
}

// Save stores token and prunes expired ones. A failed prune is only logged.
func (r *TokenRepository) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	err := r.dao.Insert(ctx, dao.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	if n, err := r.dao.DeleteExpired(ctx); err != nil {
		zap.L().Warn("failed to prune refresh tokens", zap.Error(err))
	} else if n > 0 {
		zap.L().Debug("pruned refresh tokens", zap.Int64("count", n))
	}

	return nil
}

func (r *TokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	ok, err := r.dao.Exists(ctx, token)
	if err != nil {
		return false, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	return ok, nil
}

func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	if err := r.dao.Delete(ctx, token); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

const refreshTokenKeyPrefix = "refresh_token:"

// RedisTokenRepository keeps refresh tokens as Redis keys expiring with the token.
type RedisTokenRepository struct {
	client redis.Cmdable
}

func NewRedisTokenRepository(client redis.Cmdable) *RedisTokenRepository {
	return &RedisTokenRepository{
		client: client,
	}
}

func (r *RedisTokenRepository) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	err := r.client.Set(ctx, refreshTokenKeyPrefix+token, strconv.FormatUint(uint64(userID), 10), ttl).Err()
	if err != nil {
		return fmt.Errorf("r.client.Set -> %w", err)
	}

	return nil
}

func (r *RedisTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	err := r.client.Get(ctx, refreshTokenKeyPrefix+token).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("r.client.Get -> %w", err)
	}

	return true, nil
}

func (r *RedisTokenRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, refreshTokenKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("r.client.Del -> %w", err)
	}

	return nil
}
