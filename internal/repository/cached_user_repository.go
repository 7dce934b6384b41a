package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
)

const userCacheKeyPrefix = "user:email:"

// cachedUser is the Redis entry for a user. The password stays in the store only,
// so users served from the cache carry an empty Password.
type cachedUser struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type cachedUserRepository struct {
	inner  UserRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository wraps inner with a Redis read-through cache keyed by email.
// Only found users are cached since users are never updated or deleted; a miss always
// reaches inner so the uniqueness check sees fresh writes. Redis failures are logged
// and fall through to inner.
func NewCachedUserRepository(inner UserRepository, client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) UserRepository {
	return &cachedUserRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := r.get(ctx, email); ok {
		return user, nil
	}

	user, err := r.inner.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return user, err
	}
	r.put(ctx, user)
	return user, nil
}

func (r *cachedUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved, err := r.inner.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	r.put(ctx, saved)
	return saved, nil
}

func (r *cachedUserRepository) get(ctx context.Context, email string) (*domain.User, bool) {
	raw, err := r.client.Get(ctx, userCacheKeyPrefix+email).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("user cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var entry cachedUser
	if err := json.Unmarshal(raw, &entry); err != nil {
		r.logger.Warn("user cache entry corrupt", zap.String("email", email), zap.Error(err))
		return nil, false
	}
	return &domain.User{
		UserID:    entry.UserID,
		Email:     entry.Email,
		Name:      entry.Name,
		CreatedAt: entry.CreatedAt,
	}, true
}

func (r *cachedUserRepository) put(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(cachedUser{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		r.logger.Warn("user cache encode failed", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, userCacheKeyPrefix+user.Email, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("user cache write failed", zap.Error(err))
	}
}
