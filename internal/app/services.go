package app

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/modules/recommendation"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/cache"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type Services struct {
	Catalog        services.CatalogService
	Recommendation services.RecommendationService
	Interaction    services.InteractionService
	KnowledgeGraph services.KnowledgeGraphService
	Admin          services.AdminService
}

// localTTL is the lifetime of process-local entries. With a shared tier a
// purge only reaches this replica's LRU, so the local tier is kept short.
func localTTL(c CacheConfig, shared bool) time.Duration {
	if shared && c.LocalTTL > 0 && c.LocalTTL < c.TTL {
		return c.LocalTTL
	}
	return c.TTL
}

// newCache layers a process-local LRU over Redis when Redis is configured.
func newCache[V any](log *logger.Logger, cfg *Config, rdb *goredis.Client, metrics *observability.Metrics, name string, size int) cache.Cache[V] {
	local := cache.NewLRU[V](name, size, localTTL(cfg.Cache, rdb != nil), metrics)
	if rdb == nil {
		return local
	}
	shared := cache.NewRedis[V](rdb, log, cfg.Redis.Prefix, name, cfg.Cache.TTL, metrics)
	return cache.NewLayered[V](local, shared)
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg *Config, repos Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	catalogCache := newCache[[]*supplement.Supplement](log, cfg, clients.Redis, metrics, "catalog", cfg.Cache.CatalogSize)
	graphCache := newCache[knowledge.Graph](log, cfg, clients.Redis, metrics, "knowledge_graph", cfg.Cache.GraphSize)

	engine := recommendation.NewEngine(recommendation.WithWeights(cfg.Scoring))

	catalog := services.NewCatalogService(db, log, repos.Supplement, catalogCache)
	graph := services.NewKnowledgeGraphService(
		db,
		log,
		catalog,
		repos.KnowledgeNode,
		repos.KnowledgeRelationship,
		clients.Neo4j,
		graphCache,
		metrics,
	)

	return Services{
		Catalog:        catalog,
		Recommendation: services.NewRecommendationService(log, cfg.Recommendation, engine, catalog, metrics),
		Interaction:    services.NewInteractionService(log, catalog, metrics),
		KnowledgeGraph: graph,
		Admin: services.NewAdminService(
			db,
			log,
			repos.Supplement,
			repos.KnowledgeNode,
			repos.KnowledgeRelationship,
			catalog,
			graph,
		),
	}
}
