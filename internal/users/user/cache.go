// Copyright (c) 2026 Socio. All rights reserved.

package user

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socioapp/socio/internal/platform/constants"
)

// profileCacheTTL bounds staleness for entries whose writes we cannot observe
// (follower counts change outside this package).
const profileCacheTTL = 60 * time.Second

// profileCacheKey prefixes profile entries in the shared Redis keyspace.
const profileCacheKey = constants.RedisPrefixProfile

// RedisProfileCache implements [ProfileCache] on Redis.
//
// The cache is strictly best-effort: every failure is logged and treated as a
// miss so that correctness never depends on Redis availability.
type RedisProfileCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisProfileCache constructs a Redis backed profile cache.
func NewRedisProfileCache(client *redis.Client, logger *slog.Logger) *RedisProfileCache {
	return &RedisProfileCache{client: client, logger: logger}
}

// Get returns the cached profile for a user id, or a miss.
func (cache *RedisProfileCache) Get(context context.Context, userID string) (*User, bool) {
	payload, err := cache.client.Get(context, profileCacheKey+userID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.Warn("profile_cache_get_failed", slog.String("user_id", userID), slog.Any("error", err))
		}
		return nil, false
	}

	user := &User{}
	if err := json.Unmarshal(payload, user); err != nil {
		cache.logger.Warn("profile_cache_decode_failed", slog.String("user_id", userID), slog.Any("error", err))
		return nil, false
	}

	return user, true
}

// Set stores a profile under its user id.
func (cache *RedisProfileCache) Set(context context.Context, user *User) {
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}

	if err := cache.client.Set(context, profileCacheKey+user.ID, payload, profileCacheTTL).Err(); err != nil {
		cache.logger.Warn("profile_cache_set_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}
}

// Evict removes the cached profile for a user id.
func (cache *RedisProfileCache) Evict(context context.Context, userID string) {
	if err := cache.client.Del(context, profileCacheKey+userID).Err(); err != nil {
		cache.logger.Warn("profile_cache_evict_failed", slog.String("user_id", userID), slog.Any("error", err))
	}
}
