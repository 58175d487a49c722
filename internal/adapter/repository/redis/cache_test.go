package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/goregistry/internal/usecase"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.SetIfGeneration(ctx, "member:m-1:transactions", []byte(`{"ID":"m-1"}`), time.Minute, 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "member:m-1:transactions")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"ID":"m-1"}` {
		t.Fatalf("unexpected value %s", val)
	}

	if !mr.Exists(DefaultCachePrefix + "member:m-1:transactions") {
		t.Fatalf("expected key to be stored under the cache prefix")
	}
}

func TestCacheMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	_, err := NewCache(client).Get(context.Background(), "absent")
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.SetIfGeneration(ctx, "short", []byte("x"), time.Second, 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestCacheDeleteMany(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := cache.SetIfGeneration(ctx, key, []byte(key), time.Minute, 0); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}

	if err := cache.Delete(ctx, "a", "b", "missing"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "a"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected a to be deleted")
	}
	if _, err := cache.Get(ctx, "c"); err != nil {
		t.Fatalf("expected c to survive, got %v", err)
	}

	if err := cache.Delete(ctx); err != nil {
		t.Fatalf("empty delete failed: %v", err)
	}
}

func TestCacheDeleteAdvancesGeneration(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	gen, err := cache.Generation(ctx, "member:m-1:transactions")
	if err != nil || gen != 0 {
		t.Fatalf("expected generation 0, got %d (%v)", gen, err)
	}

	if err := cache.Delete(ctx, "member:m-1:transactions"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := cache.Delete(ctx, "member:m-1:transactions"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	gen, err = cache.Generation(ctx, "member:m-1:transactions")
	if err != nil || gen != 2 {
		t.Fatalf("expected generation 2, got %d (%v)", gen, err)
	}
	if ttl := mr.TTL(DefaultCachePrefix + "member:m-1:transactions:gen"); ttl != generationTTL {
		t.Fatalf("expected generation key ttl %s, got %s", generationTTL, ttl)
	}
}

func TestCacheRejectsWriteAfterInvalidation(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()
	key := "member:m-1:transactions"

	// A reader takes the generation and starts loading.
	gen, err := cache.Generation(ctx, key)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	// A transfer commits and invalidates before the reader writes back.
	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	err = cache.SetIfGeneration(ctx, key, []byte(`{"ID":"m-1","stale":true}`), time.Minute, gen)
	if !errors.Is(err, usecase.ErrCacheStale) {
		t.Fatalf("expected stale write to be rejected, got %v", err)
	}
	if _, err := cache.Get(ctx, key); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected no cached value after rejected write, got %v", err)
	}

	// A reader starting after the invalidation may populate the cache.
	gen, err = cache.Generation(ctx, key)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if err := cache.SetIfGeneration(ctx, key, []byte(`{"ID":"m-1"}`), time.Minute, gen); err != nil {
		t.Fatalf("fresh write failed: %v", err)
	}
}
