package app

import (
	"context"
	"strings"

	"gorm.io/gorm"

	httpH "github.com/yungbote/suplementor-backend/internal/http/handlers"
	httpMW "github.com/yungbote/suplementor-backend/internal/http/middleware"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type Middleware struct {
	// Admin is nil when no admin secret is configured.
	Admin *httpMW.AdminAuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Supplement     *httpH.SupplementHandler
	Recommendation *httpH.RecommendationHandler
	Interaction    *httpH.InteractionHandler
	KnowledgeGraph *httpH.KnowledgeGraphHandler
	Admin          *httpH.AdminHandler
}

func wireMiddleware(log *logger.Logger, cfg *Config) Middleware {
	log.Info("Wiring middleware...")
	secret := strings.TrimSpace(cfg.Admin.JWTSecret)
	if secret == "" {
		log.Warn("ADMIN_JWT_SECRET not set; admin api disabled")
		return Middleware{}
	}
	return Middleware{Admin: httpMW.NewAdminAuthMiddleware(log, secret)}
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(dbPing(db)),
		Supplement:     httpH.NewSupplementHandler(services.Catalog, services.Recommendation),
		Recommendation: httpH.NewRecommendationHandler(services.Recommendation),
		Interaction:    httpH.NewInteractionHandler(services.Interaction),
		KnowledgeGraph: httpH.NewKnowledgeGraphHandler(services.KnowledgeGraph),
		Admin:          httpH.NewAdminHandler(services.Admin, services.KnowledgeGraph),
	}
}

func dbPing(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
