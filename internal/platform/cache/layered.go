package cache

import "context"

// Layered reads through a fast local tier before a shared tier and
// backfills the local tier on shared hits.
type Layered[V any] struct {
	local  Cache[V]
	shared Cache[V]
}

func NewLayered[V any](local, shared Cache[V]) Cache[V] {
	if shared == nil {
		return local
	}
	if local == nil {
		return shared
	}
	return &Layered[V]{local: local, shared: shared}
}

func (c *Layered[V]) Get(ctx context.Context, key string) (V, bool) {
	if v, ok := c.local.Get(ctx, key); ok {
		return v, true
	}
	v, ok := c.shared.Get(ctx, key)
	if ok {
		c.local.Set(ctx, key, v)
	}
	return v, ok
}

func (c *Layered[V]) Set(ctx context.Context, key string, value V) {
	c.local.Set(ctx, key, value)
	c.shared.Set(ctx, key, value)
}

func (c *Layered[V]) Delete(ctx context.Context, key string) {
	c.local.Delete(ctx, key)
	c.shared.Delete(ctx, key)
}

func (c *Layered[V]) Purge(ctx context.Context) {
	c.local.Purge(ctx)
	c.shared.Purge(ctx)
}
