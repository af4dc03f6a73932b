package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"filmorate/internal/observability"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	PopularKeyPrefix  = "films:popular:%d"
	PopularKeyPattern = "films:popular:*"
)

// PopularTTL bounds how long a cached ranking may be served.
var PopularTTL = 30 * time.Second

func PopularKey(count int) string {
	return fmt.Sprintf(PopularKeyPrefix, count)
}

// Aside loads key into dest, calling fetch on a miss and storing the result.
// Without a client or with a non-positive ttl it just calls fetch.
// Redis failures fall back to fetch.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil || ttl <= 0 {
		observability.CacheLookups.WithLabelValues("bypass").Inc()
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			observability.CacheLookups.WithLabelValues("hit").Inc()
			return nil
		}
		Invalidate(ctx, key)
	case !errors.Is(err, redis.Nil):
		observability.GlobalLogger.WarnContext(ctx, "cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}

	observability.CacheLookups.WithLabelValues("miss").Inc()
	if err := fetch(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePopular drops every cached popular ranking.
func InvalidatePopular(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, PopularKeyPattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "cache scan failed", slog.String("error", err.Error()))
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}
