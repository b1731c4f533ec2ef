package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, rdb
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "cv")
	ctx := context.Background()

	if err := store.Set(ctx, KeyToken, "token-1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := store.Get(ctx, KeyToken)
	if err != nil || got != "token-1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	// Keys land under the configured namespace.
	if !mr.Exists("cv:" + KeyToken) {
		t.Fatal("key not namespaced under the prefix")
	}

	if _, err := store.Get(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get absent = %v, want ErrNotFound", err)
	}
}

func TestRedisStoreDefaultPrefix(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "")
	ctx := context.Background()

	if err := store.Set(ctx, KeyToken, "t"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !mr.Exists("cv:" + KeyToken) {
		t.Fatal("empty prefix must fall back to the default namespace")
	}
}

func TestRedisStoreDel(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "cv")
	ctx := context.Background()

	_ = store.Set(ctx, KeyToken, "t")
	_ = store.Set(ctx, KeyTokenExpiry, time.Now().Format(time.RFC3339))

	if err := store.Del(ctx, KeyToken, KeyTokenExpiry, "absent"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if _, err := store.Get(ctx, KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("token survived Del: %v", err)
	}

	if err := store.Del(ctx); err != nil {
		t.Fatalf("empty Del failed: %v", err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "cv")
	ctx := context.Background()

	mr.Close()

	if _, err := store.Get(ctx, KeyToken); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Get after close = %v, want ErrStoreUnavailable", err)
	}
	if err := store.Set(ctx, KeyToken, "t"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Set after close = %v, want ErrStoreUnavailable", err)
	}
}

func TestRedisStoreFullSessionRoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "cv")
	ctx := context.Background()

	if err := Save(ctx, store, testSession(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	sess, err := Load(ctx, store)
	if err != nil || sess == nil || sess.Token != "token-1" {
		t.Fatalf("Load = %+v, %v", sess, err)
	}

	if err := Clear(ctx, store); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	sess, err = Load(ctx, store)
	if err != nil || sess != nil {
		t.Fatalf("Load after Clear = %+v, %v", sess, err)
	}
}
