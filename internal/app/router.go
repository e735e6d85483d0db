package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/suplementor-backend/internal/http"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg *Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,

		AdminMiddleware: middleware.Admin,

		HealthHandler:         handlers.Health,
		SupplementHandler:     handlers.Supplement,
		RecommendationHandler: handlers.Recommendation,
		InteractionHandler:    handlers.Interaction,
		KnowledgeGraphHandler: handlers.KnowledgeGraph,
		AdminHandler:          handlers.Admin,
	})
}
