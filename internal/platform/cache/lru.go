package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 256
	DefaultTTL  = 10 * time.Minute
)

// LRU is an in-process cache bounded by entry count and entry age.
type LRU[V any] struct {
	name string
	lru  *expirable.LRU[string, V]
	rec  Recorder
}

func NewLRU[V any](name string, size int, ttl time.Duration, rec Recorder) *LRU[V] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LRU[V]{
		name: name,
		lru:  expirable.NewLRU[string, V](size, nil, ttl),
		rec:  rec,
	}
}

func (c *LRU[V]) Get(_ context.Context, key string) (V, bool) {
	v, ok := c.lru.Get(key)
	record(c.rec, c.name, ok)
	return v, ok
}

func (c *LRU[V]) Set(_ context.Context, key string, value V) {
	c.lru.Add(key, value)
}

func (c *LRU[V]) Delete(_ context.Context, key string) {
	c.lru.Remove(key)
}

func (c *LRU[V]) Purge(_ context.Context) {
	c.lru.Purge()
}

func (c *LRU[V]) Len() int { return c.lru.Len() }
