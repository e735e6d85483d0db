package cache

import "context"

// Cache is a keyed store for derived read models (catalog snapshots, projected graphs).
// Implementations are safe for concurrent use. Backend failures degrade to misses.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V)
	Delete(ctx context.Context, key string)
	Purge(ctx context.Context)
}

// Recorder receives hit/miss events, labelled with the cache name.
type Recorder interface {
	CacheHit(name string)
	CacheMiss(name string)
}

func record(r Recorder, name string, hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.CacheHit(name)
	} else {
		r.CacheMiss(name)
	}
}

// Noop never stores anything.
type Noop[V any] struct{}

func (Noop[V]) Get(context.Context, string) (V, bool) {
	var zero V
	return zero, false
}
func (Noop[V]) Set(context.Context, string, V) {}
func (Noop[V]) Delete(context.Context, string) {}
func (Noop[V]) Purge(context.Context) {}
