// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// document.go provides a Valkey-backed cache for rendered documents.
// Rendering an invoice walks the template tree, encodes QR/barcode
// images, and aggregates line items; caching the resulting HTML lets
// repeated document fetches skip all of that. Keys combine the template
// id and version with the invoice id, so a template update naturally
// misses old entries, and explicit invalidation sweeps a template's
// entries when it is deleted.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// documentKeyPrefix is the Valkey key prefix for cached documents.
	documentKeyPrefix = "doc:"

	// DefaultDocumentTTL is how long a rendered document stays cached.
	DefaultDocumentTTL = 10 * time.Minute
)

// DocumentCache manages rendered document HTML in Valkey.
type DocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocumentCache creates a document cache backed by the given Valkey client.
func NewDocumentCache(client *redis.Client, ttl time.Duration) *DocumentCache {
	if ttl == 0 {
		ttl = DefaultDocumentTTL
	}
	return &DocumentCache{client: client, ttl: ttl}
}

// Key builds the cache key for one rendered document.
func Key(templateID string, templateVersion int, invoiceID string) string {
	return fmt.Sprintf("%s:%d:%s", templateID, templateVersion, invoiceID)
}

// Get retrieves cached HTML for a document key. Returns false on miss.
func (dc *DocumentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := dc.client.Get(ctx, documentKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("document cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("document cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a document key with the configured TTL.
func (dc *DocumentCache) Set(ctx context.Context, key string, html []byte) {
	if err := dc.client.Set(ctx, documentKeyPrefix+key, html, dc.ttl).Err(); err != nil {
		slog.Warn("document cache set error", "key", key, "error", err)
	}
}

// InvalidateTemplate removes all cached documents rendered from a
// template, across all of its versions.
func (dc *DocumentCache) InvalidateTemplate(ctx context.Context, templateID string) {
	pattern := documentKeyPrefix + templateID + ":*"
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := dc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("document cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := dc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("document cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("document cache invalidated", "template_id", templateID, "deleted", deleted)
	}
}
