package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

// NewRedisClient dials addr and pings it. An empty addr disables Redis (nil, nil).
func NewRedisClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// Redis stores JSON-encoded values under "<prefix>:<name>:<key>" so several
// replicas share one warm cache.
type Redis[V any] struct {
	name   string
	prefix string
	ttl    time.Duration
	rdb    *goredis.Client
	log    *logger.Logger
	rec    Recorder
}

func NewRedis[V any](rdb *goredis.Client, log *logger.Logger, prefix, name string, ttl time.Duration, rec Recorder) *Redis[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "suplementor"
	}
	return &Redis[V]{
		name:   name,
		prefix: prefix + ":" + name + ":",
		ttl:    ttl,
		rdb:    rdb,
		log:    log.With("cache", name, "backend", "redis"),
		rec:    rec,
	}
}

func (c *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var out V
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("redis get failed", "key", key, "error", err)
		}
		record(c.rec, c.name, false)
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn("redis decode failed", "key", key, "error", err)
		record(c.rec, c.name, false)
		return out, false
	}
	record(c.rec, c.name, true)
	return out, true
}

func (c *Redis[V]) Set(ctx context.Context, key string, value V) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("redis encode failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("redis set failed", "key", key, "error", err)
	}
}

func (c *Redis[V]) Delete(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		c.log.Warn("redis del failed", "key", key, "error", err)
	}
}

func (c *Redis[V]) Purge(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 200).Iterator()
	keys := make([]string, 0, 64)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("redis scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("redis purge failed", "keys", len(keys), "error", err)
	}
}
