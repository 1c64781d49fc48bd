package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/classroom-service/internal/config"
)

const revokedTokenPrefix = "revoked_token:"

// Redis wraps the go-redis client. It backs the logout token denylist.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Revoke stores the token until its natural expiry, after which the entry
// is pointless and allowed to lapse.
func (r *Redis) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, revokedTokenPrefix+token, "1", ttl).Err()
}

// IsRevoked reports whether the token has been revoked by a logout.
func (r *Redis) IsRevoked(ctx context.Context, token string) (bool, error) {
	if r == nil || r.Client == nil {
		return false, nil
	}
	n, err := r.Client.Exists(ctx, revokedTokenPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
