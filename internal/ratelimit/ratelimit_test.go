package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryAllowsUpToMax(t *testing.T) {
	lim := NewMemory(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := lim.Allow(ctx, "1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v, want allowed", i+1, ok, err)
		}
	}
	ok, _ := lim.Allow(ctx, "1.2.3.4")
	if ok {
		t.Fatal("request over the budget was allowed")
	}
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	lim := NewMemory(1, time.Minute)
	ctx := context.Background()

	if ok, _ := lim.Allow(ctx, "1.2.3.4"); !ok {
		t.Fatal("first key rejected")
	}
	if ok, _ := lim.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("second key rejected despite separate budget")
	}
}

func TestMemoryWindowSlides(t *testing.T) {
	lim := NewMemory(2, time.Minute)
	clock := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)
	lim.now = func() time.Time { return clock }
	ctx := context.Background()

	lim.Allow(ctx, "k")
	lim.Allow(ctx, "k")
	if ok, _ := lim.Allow(ctx, "k"); ok {
		t.Fatal("third request inside window was allowed")
	}

	clock = clock.Add(61 * time.Second)
	if ok, _ := lim.Allow(ctx, "k"); !ok {
		t.Fatal("request after window expiry was rejected")
	}
}

func TestMemorySweepsIdleKeys(t *testing.T) {
	lim := NewMemory(20, time.Minute)
	clock := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)
	lim.now = func() time.Time { return clock }
	ctx := context.Background()

	lim.Allow(ctx, "1.2.3.4")
	lim.Allow(ctx, "5.6.7.8")
	if len(lim.hits) != 2 {
		t.Fatalf("tracked keys = %d, want 2", len(lim.hits))
	}

	// Once the window has passed, a request from any client clears out
	// the keys nobody touched again.
	clock = clock.Add(2 * time.Minute)
	lim.Allow(ctx, "9.9.9.9")
	if len(lim.hits) != 1 {
		t.Fatalf("tracked keys after sweep = %d, want 1", len(lim.hits))
	}
	if _, ok := lim.hits["9.9.9.9"]; !ok {
		t.Fatal("active key was swept away")
	}
}
