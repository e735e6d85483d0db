package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/suplementor-backend/internal/platform/cache"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
	"github.com/yungbote/suplementor-backend/internal/platform/neo4jdb"
)

// Clients holds optional backends. A nil field means the backend is not configured.
type Clients struct {
	Redis *goredis.Client
	Neo4j *neo4jdb.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *Config) (Clients, error) {
	log.Info("Wiring clients...")

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	if rdb == nil {
		log.Info("Redis not configured; caches are process-local")
	}

	neo, err := neo4jdb.New(ctx, cfg.Neo4j, log)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}
	if neo == nil {
		log.Info("Neo4j not configured; graph sync disabled")
	}

	return Clients{Redis: rdb, Neo4j: neo}, nil
}

func (c Clients) Close(ctx context.Context) error {
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if c.Neo4j != nil {
		if err := c.Neo4j.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
