// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, documentKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestKey(t *testing.T) {
	got := Key("tmpl-1", 3, "inv-9")
	want := "tmpl-1:3:inv-9"
	if got != want {
		t.Errorf("Key: got %q, want %q", got, want)
	}
}

func TestDocumentCache_SetGet(t *testing.T) {
	client := testValkeyClient(t)
	dc := NewDocumentCache(client, time.Minute)
	ctx := context.Background()

	key := Key("tmpl-a", 1, "inv-1")
	html := []byte("<div class=\"document\">facture</div>")

	if _, ok := dc.Get(ctx, key); ok {
		t.Fatal("Get before Set: want miss, got hit")
	}

	dc.Set(ctx, key, html)

	got, ok := dc.Get(ctx, key)
	if !ok {
		t.Fatal("Get after Set: want hit, got miss")
	}
	if !bytes.Equal(got, html) {
		t.Errorf("cached HTML: got %q, want %q", got, html)
	}
}

func TestDocumentCache_InvalidateTemplate(t *testing.T) {
	client := testValkeyClient(t)
	dc := NewDocumentCache(client, time.Minute)
	ctx := context.Background()

	// Two versions of the same template, plus one unrelated template.
	dc.Set(ctx, Key("tmpl-b", 1, "inv-1"), []byte("v1"))
	dc.Set(ctx, Key("tmpl-b", 2, "inv-1"), []byte("v2"))
	dc.Set(ctx, Key("tmpl-c", 1, "inv-1"), []byte("other"))

	dc.InvalidateTemplate(ctx, "tmpl-b")

	if _, ok := dc.Get(ctx, Key("tmpl-b", 1, "inv-1")); ok {
		t.Error("tmpl-b v1 still cached after invalidation")
	}
	if _, ok := dc.Get(ctx, Key("tmpl-b", 2, "inv-1")); ok {
		t.Error("tmpl-b v2 still cached after invalidation")
	}
	if _, ok := dc.Get(ctx, Key("tmpl-c", 1, "inv-1")); !ok {
		t.Error("unrelated template was invalidated")
	}
}

func TestNewDocumentCache_DefaultTTL(t *testing.T) {
	dc := NewDocumentCache(nil, 0)
	if dc.ttl != DefaultDocumentTTL {
		t.Errorf("ttl: got %v, want %v", dc.ttl, DefaultDocumentTTL)
	}
}
