package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingRecorder struct {
	mu     sync.Mutex
	hits   int
	misses int
}

func (r *countingRecorder) CacheHit(string)  { r.mu.Lock(); r.hits++; r.mu.Unlock() }
func (r *countingRecorder) CacheMiss(string) { r.mu.Lock(); r.misses++; r.mu.Unlock() }

func TestLRU_EvictsBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	c := NewLRU[int]("t", 2, time.Minute, nil)
	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Set(ctx, "c", 3)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if v, ok := c.Get(ctx, "c"); !ok || v != 3 {
		t.Fatalf("expected c=3, got %v %v", v, ok)
	}
}

func TestLRU_ExpiresByTTL(t *testing.T) {
	ctx := context.Background()
	c := NewLRU[string]("t", 4, 20*time.Millisecond, nil)
	c.Set(ctx, "k", "v")
	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestLRU_RecordsHitsAndMisses(t *testing.T) {
	ctx := context.Background()
	rec := &countingRecorder{}
	c := NewLRU[int]("t", 4, time.Minute, rec)
	c.Get(ctx, "missing")
	c.Set(ctx, "k", 1)
	c.Get(ctx, "k")
	if rec.hits != 1 || rec.misses != 1 {
		t.Fatalf("unexpected counts hits=%d misses=%d", rec.hits, rec.misses)
	}
}

func TestLayered_BackfillsLocalTier(t *testing.T) {
	ctx := context.Background()
	local := NewLRU[int]("local", 4, time.Minute, nil)
	shared := NewLRU[int]("shared", 4, time.Minute, nil)
	shared.Set(ctx, "k", 7)

	c := NewLayered[int](local, shared)
	if v, ok := c.Get(ctx, "k"); !ok || v != 7 {
		t.Fatalf("expected shared hit, got %v %v", v, ok)
	}
	if v, ok := local.Get(ctx, "k"); !ok || v != 7 {
		t.Fatalf("expected local backfill, got %v %v", v, ok)
	}

	c.Purge(ctx)
	if local.Len() != 0 || shared.Len() != 0 {
		t.Fatalf("expected both tiers purged")
	}
}

func TestNewLayered_CollapsesMissingTier(t *testing.T) {
	local := NewLRU[int]("local", 4, time.Minute, nil)
	if got := NewLayered[int](local, nil); got != Cache[int](local) {
		t.Fatalf("expected local tier returned as-is")
	}
}

func TestNoop_NeverHits(t *testing.T) {
	var c Cache[int] = Noop[int]{}
	c.Set(context.Background(), "k", 1)
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatalf("noop cache should never hit")
	}
}
