// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// list.go provides a Valkey-backed cache for the JSON bodies of the public
// list endpoints. Reads are served from Valkey when possible; every mutation
// purges the affected keys so clients never see deleted or stale rows.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listKeyPrefix namespaces list-cache keys in Valkey.
	listKeyPrefix = "list:"

	// DefaultListTTL is how long a cached list payload stays fresh.
	DefaultListTTL = 1 * time.Minute
)

// Cache keys for the three public list endpoints. Filtered post listings
// append their query string, so purging by the "posts" prefix covers them.
const (
	CategoriesKey    = "categories"
	SubcategoriesKey = "sub-categories"
	PostsKey         = "posts"
)

// ListCache manages list-payload caching in Valkey. A nil *ListCache is
// valid and disables caching entirely.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss or when disabled.
func (lc *ListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if lc == nil {
		return nil, false
	}
	val, err := lc.client.Get(ctx, listKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("list cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("list cache hit", "key", key)
	return val, true
}

// Set stores a payload for a key with the configured TTL.
func (lc *ListCache) Set(ctx context.Context, key string, payload []byte) {
	if lc == nil {
		return
	}
	if err := lc.client.Set(ctx, listKeyPrefix+key, payload, lc.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "key", key, "error", err)
	}
}

// Purge removes every cached payload under the given key prefixes. Called
// after successful mutations; errors are logged, never surfaced, since the
// cache is best-effort.
func (lc *ListCache) Purge(ctx context.Context, prefixes ...string) {
	if lc == nil {
		return
	}
	for _, prefix := range prefixes {
		var cursor uint64
		for {
			keys, next, err := lc.client.Scan(ctx, cursor, listKeyPrefix+prefix+"*", 100).Result()
			if err != nil {
				slog.Warn("list cache scan error", "prefix", prefix, "error", err)
				break
			}
			if len(keys) > 0 {
				if err := lc.client.Del(ctx, keys...).Err(); err != nil {
					slog.Warn("list cache delete error", "prefix", prefix, "error", err)
				}
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
}
