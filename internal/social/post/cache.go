// Copyright (c) 2026 Socio. All rights reserved.

package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socioapp/socio/internal/platform/constants"
)

// Cache TTLs. Post projections can be evicted precisely on their writes, so
// they live longer; composed pages cannot (a follow or a like elsewhere
// changes them), so they expire quickly instead.
const (
	postCacheTTL = 5 * time.Minute
	pageCacheTTL = 15 * time.Second
)

// RedisCache implements [Cache] on Redis. It also serves as the engagement
// evictor: like and comment writes drop the stale post projection through it.
//
// Strictly best-effort: every failure is logged and treated as a miss.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache constructs a Redis backed post cache.
func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// # Post Projections

// GetPost returns the cached viewer-independent projection, or a miss.
func (cache *RedisCache) GetPost(context context.Context, postID string) (*Post, bool) {
	post := &Post{}
	if !cache.get(context, constants.RedisPrefixPost+postID, post) {
		return nil, false
	}
	return post, true
}

// SetPost stores a viewer-independent post projection.
func (cache *RedisCache) SetPost(context context.Context, post *Post) {
	cache.set(context, constants.RedisPrefixPost+post.ID, post, postCacheTTL)
}

// EvictPost drops the cached projection for a post id.
func (cache *RedisCache) EvictPost(context context.Context, postID string) {
	if err := cache.client.Del(context, constants.RedisPrefixPost+postID).Err(); err != nil {
		cache.logger.Warn("post_cache_evict_failed", slog.String("post_id", postID), slog.Any("error", err))
	}
}

// # Composed Pages

// feedPage is the stored shape of one composed page and its total.
type feedPage struct {
	Posts []*Post `json:"posts"`
	Total int     `json:"total"`
}

func feedKey(viewerID string, page, size int) string {
	return fmt.Sprintf("%s%s:%d:%d", constants.RedisPrefixFeed, viewerID, page, size)
}

func rankedKey(viewerID string, page, size int) string {
	return fmt.Sprintf("%s%s:%d:%d", constants.RedisPrefixRanked, viewerID, page, size)
}

// GetFeedPage returns a cached feed page with its source-set total.
func (cache *RedisCache) GetFeedPage(context context.Context, viewerID string, page, size int) ([]*Post, int, bool) {
	stored := &feedPage{}
	if !cache.get(context, feedKey(viewerID, page, size), stored) {
		return nil, 0, false
	}
	return stored.Posts, stored.Total, true
}

// SetFeedPage stores one composed feed page under its viewer and position.
func (cache *RedisCache) SetFeedPage(context context.Context, viewerID string, page, size int, posts []*Post, total int) {
	cache.set(context, feedKey(viewerID, page, size), &feedPage{Posts: posts, Total: total}, pageCacheTTL)
}

// GetRankedPage returns a cached engagement-ranked page with its visible total.
func (cache *RedisCache) GetRankedPage(context context.Context, viewerID string, page, size int) ([]*Post, int, bool) {
	stored := &feedPage{}
	if !cache.get(context, rankedKey(viewerID, page, size), stored) {
		return nil, 0, false
	}
	return stored.Posts, stored.Total, true
}

// SetRankedPage stores one engagement-ranked page.
func (cache *RedisCache) SetRankedPage(context context.Context, viewerID string, page, size int, posts []*Post, total int) {
	cache.set(context, rankedKey(viewerID, page, size), &feedPage{Posts: posts, Total: total}, pageCacheTTL)
}

// # Plumbing

func (cache *RedisCache) get(context context.Context, key string, target any) bool {
	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.Warn("post_cache_get_failed", slog.String("key", key), slog.Any("error", err))
		}
		return false
	}

	if err := json.Unmarshal(payload, target); err != nil {
		cache.logger.Warn("post_cache_decode_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return true
}

func (cache *RedisCache) set(context context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := cache.client.Set(context, key, payload, ttl).Err(); err != nil {
		cache.logger.Warn("post_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}
