// internal/app/system/suggestcache/suggestcache.go

// Package suggestcache caches suggestion results keyed by the lower-cased prefix.
// A cache miss or a cache failure is never fatal; callers fall back to the
// database.
package suggestcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores suggestion lists by prefix.
type Cache interface {
	Get(ctx context.Context, prefix string) ([]models.Suggestion, bool)
	Set(ctx context.Context, prefix string, s []models.Suggestion)
	Ping(ctx context.Context) error
}

// Key returns the cache key for a prefix. Prefixes differing only in case
// share an entry, matching the case-insensitive query; accents are kept
// because the query does not fold them.
func Key(prefix string) string {
	return "opphub:suggest:" + strings.ToLower(prefix)
}

// Connect parses redisURL and verifies connectivity.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Redis is a Cache backed by a Redis client with a fixed TTL.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewRedis wraps rdb. Entries expire after ttl.
func NewRedis(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	return &Redis{rdb: rdb, ttl: ttl, log: logger}
}

func (r *Redis) Get(ctx context.Context, prefix string) ([]models.Suggestion, bool) {
	raw, err := r.rdb.Get(ctx, Key(prefix)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.Warn("suggestion cache read failed", zap.Error(err))
		return nil, false
	}
	var out []models.Suggestion
	if err := json.Unmarshal(raw, &out); err != nil {
		r.log.Warn("suggestion cache entry unreadable", zap.String("key", Key(prefix)), zap.Error(err))
		return nil, false
	}
	return out, true
}

func (r *Redis) Set(ctx context.Context, prefix string, s []models.Suggestion) {
	if s == nil {
		s = []models.Suggestion{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, Key(prefix), raw, r.ttl).Err(); err != nil {
		r.log.Warn("suggestion cache write failed", zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Nop is used when no Redis URL is configured. It never hits.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]models.Suggestion, bool) { return nil, false }
func (Nop) Set(context.Context, string, []models.Suggestion)        {}
func (Nop) Ping(context.Context) error                              { return ErrDisabled }

// ErrDisabled is reported by Nop.Ping so health checks can show the cache
// as disabled rather than down.
var ErrDisabled = errors.New("suggestion cache disabled")
