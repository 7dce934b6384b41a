package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
)

const redisDialTimeout = 3 * time.Second

var errNoRedis = errors.New("redis client not configured")

// Redis holds the client shared by the user lookup cache and the readiness probe.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the client and checks it once. The cache degrades to the store
// when Redis is down, so an unreachable server only produces a warning.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisDialTimeout,
	})

	log := logger.With(zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable; user cache will miss", zap.Error(err))
	} else {
		log.Info("connected to redis")
	}
	return &Redis{Client: client}
}

func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errNoRedis
	}
	return r.Client.Ping(ctx).Err()
}
