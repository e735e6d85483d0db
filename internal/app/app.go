package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/db"
	"github.com/yungbote/suplementor-backend/internal/data/seed"
	apphttp "github.com/yungbote/suplementor-backend/internal/http"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      *Config
	Metrics  *observability.Metrics
	Clients  Clients
	Repos    Repos
	Services Services

	dbService    *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// Options let callers such as the CLI override the loaded config.
type Options struct {
	Config *Config
	Log    *logger.Logger
}

func New(ctx context.Context) (*App, error) {
	return NewWithOptions(ctx, Options{})
}

func NewWithOptions(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	log := opts.Log
	if log == nil {
		l, err := logger.NewWithLevel(cfg.Log.Mode, cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		log = l
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.NewMetrics(cfg.Metrics)

	dbService, err := db.NewService(cfg.Database, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := dbService.DB()
	if cfg.Database.AutoMigrate {
		if err := Migrate(theDB, log); err != nil {
			_ = dbService.Close()
			log.Sync()
			return nil, err
		}
	}
	if sqlDB, err := theDB.DB(); err == nil {
		metrics.RegisterDBStats(sqlDB, cfg.Database.Driver)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	if cfg.Database.Seed {
		res, err := seed.Apply(ctx, theDB, log, reposet.Supplement, reposet.KnowledgeNode, reposet.KnowledgeRelationship)
		if err != nil {
			_ = clients.Close(ctx)
			_ = dbService.Close()
			log.Sync()
			return nil, fmt.Errorf("seed: %w", err)
		}
		log.Info("Seed applied", "supplements", res.Supplements, "nodes", res.Nodes, "relationships", res.Relationships)
	}

	serviceset := wireServices(theDB, log, cfg, reposet, clients, metrics)
	handlerset := wireHandlers(log, theDB, serviceset)
	middleware := wireMiddleware(log, cfg)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Metrics:      metrics,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Migrate creates tables and the indexes gorm tags cannot express.
func Migrate(theDB *gorm.DB, log *logger.Logger) error {
	log.Info("Running migrations...")
	if err := db.AutoMigrateAll(theDB); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := db.EnsureIndexes(theDB); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}

// Start launches background collectors.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Clients.Redis != nil {
		a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis)
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Start(ctx)
	a.Log.Info("Server listening", "addr", a.Cfg.Addr())
	srv := &apphttp.Server{Engine: a.Router}
	return srv.Run(ctx, a.Cfg.Addr())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Clients.Close(ctx); err != nil {
		a.Log.Warn("Closing clients failed", "error", err)
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Tracer shutdown failed", "error", err)
		}
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
	}
	a.Log.Sync()
}
