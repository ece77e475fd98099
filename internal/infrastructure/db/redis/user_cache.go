package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pressroom/auth-service/internal/api/metrics"
	"github.com/pressroom/auth-service/internal/core/domain"
	"github.com/pressroom/auth-service/internal/core/ports"
)

const defaultUserTTL = 5 * time.Minute

// UserCache is a read-through cache for user lookups by id, in front of any
// ports.UserRepository. Role updates invalidate the entry so role checks
// always see the new value.
//
// Key format: user:<id>. Cached records never hold the password hash; id
// lookups are only used for session and role checks.
type UserCache struct {
	ports.UserRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewUserCache wraps repo. If ttl <= 0, defaultUserTTL is used.
func NewUserCache(repo ports.UserRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{UserRepository: repo, client: client, ttl: ttl, log: log}
}

// FindByID serves from Redis when possible. Cache failures fall back to the store.
func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	switch {
	case err == nil:
		var u domain.User
		if jsonErr := json.Unmarshal(raw, &u); jsonErr == nil {
			metrics.UserCacheTotal.WithLabelValues("hit").Inc()
			return &u, nil
		}
		c.log.Warn().Str("user_id", id).Msg("corrupt user cache entry, reloading")
	case errors.Is(err, redis.Nil):
		metrics.UserCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.UserCacheTotal.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Str("user_id", id).Msg("user cache read failed, using store")
	}

	user, err := c.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, user)
	return user, nil
}

// UpdateRole writes through to the store and drops the cached entry.
func (c *UserCache) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	user, err := c.UserRepository.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if delErr := c.client.Del(ctx, userKey(id)).Err(); delErr != nil {
		c.log.Warn().Err(delErr).Str("user_id", id).Msg("failed to invalidate user cache")
	}
	return user, nil
}

func (c *UserCache) store(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, userKey(user.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to populate user cache")
	}
}

func userKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}
