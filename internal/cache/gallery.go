// Package cache keeps rendered gallery reads in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	prefix         = "gallery:"
	KeyCollections = prefix + "collections"
	KeyFeatured    = prefix + "featured"
)

func KeyCollectionPhotos(id uuid.UUID) string {
	return fmt.Sprintf("%scollection:%s:photos", prefix, id)
}

// Gallery caches public gallery reads. A Gallery built on a nil client is a
// no-op, and Redis errors never fail the caller.
type Gallery struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewGallery(rdb *redis.Client, ttl time.Duration) *Gallery {
	return &Gallery{
		rdb:    rdb,
		ttl:    ttl,
		logger: slog.Default().With(slog.String("component", "gallery_cache")),
	}
}

func (g *Gallery) enabled() bool {
	return g != nil && g.rdb != nil
}

// Get decodes the cached value for key into dst and reports whether it hit.
func (g *Gallery) Get(ctx context.Context, key string, dst interface{}) bool {
	if !g.enabled() {
		return false
	}
	cached, err := g.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			g.logger.Warn("cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return false
	}
	return json.Unmarshal(cached, dst) == nil
}

func (g *Gallery) Set(ctx context.Context, key string, value interface{}) {
	if !g.enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := g.rdb.Set(ctx, key, data, g.ttl).Err(); err != nil {
		g.logger.Warn("cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Invalidate drops every gallery key. Called after any write that can change
// a public gallery read.
func (g *Gallery) Invalidate(ctx context.Context) {
	if !g.enabled() {
		return
	}
	var keys []string
	iter := g.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		g.logger.Warn("cache scan failed", slog.Any("error", err))
	}
	if len(keys) > 0 {
		if err := g.rdb.Del(ctx, keys...).Err(); err != nil {
			g.logger.Warn("cache invalidation failed", slog.Any("error", err))
		}
	}
}
