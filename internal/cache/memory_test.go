package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected hit with %q, got %q ok=%v", "v", got, ok)
	}

	if _, ok := c.Get(ctx, "absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestMemoryCache_NonPositiveTTL(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("non-positive TTL should not store")
	}
}

func TestLookup_Memoizes(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := Lookup(ctx, c, "answer", time.Minute, compute)
	if err != nil || v != 42 {
		t.Fatalf("first lookup: got %d, %v", v, err)
	}
	v, err = Lookup(ctx, c, "answer", time.Minute, compute)
	if err != nil || v != 42 {
		t.Fatalf("second lookup: got %d, %v", v, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 compute call, got %d", calls)
	}
}

func TestLookup_ErrorNotCached(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	calls := 0
	failing := func() (string, error) {
		calls++
		return "", errors.New("boom")
	}

	if _, err := Lookup(ctx, c, "k", time.Minute, failing); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Lookup(ctx, c, "k", time.Minute, failing); err == nil {
		t.Fatal("expected error on retry")
	}
	if calls != 2 {
		t.Errorf("failures must not cache: expected 2 calls, got %d", calls)
	}
}
