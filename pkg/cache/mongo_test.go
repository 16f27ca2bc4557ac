package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestExpiryFor(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if got := expiryFor(0, now); got != nil {
		t.Errorf("expiryFor(0) = %v, want nil", got)
	}
	if got := expiryFor(-time.Second, now); got != nil {
		t.Errorf("expiryFor(-1s) = %v, want nil", got)
	}
	got := expiryFor(time.Hour, now)
	if got == nil || !got.Equal(now.Add(time.Hour)) {
		t.Errorf("expiryFor(1h) = %v, want %v", got, now.Add(time.Hour))
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	if expired(nil, now) {
		t.Error("nil expiry should never expire")
	}
	if !expired(&past, now) {
		t.Error("past expiry should be expired")
	}
	if expired(&future, now) {
		t.Error("future expiry should not be expired")
	}
}

// TestMongoCache runs against a live server when LYRICSPIRAL_TEST_MONGO_URI
// is set.
func TestMongoCache(t *testing.T) {
	uri := os.Getenv("LYRICSPIRAL_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LYRICSPIRAL_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, MongoConfig{URI: uri, Collection: "cache_test"})
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()

	key := "test:" + time.Now().Format(time.RFC3339Nano)
	if err := c.Set(ctx, key, []byte("doc"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "doc" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}
