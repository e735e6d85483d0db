package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/suplementor-backend/internal/http/handlers"
	httpMW "github.com/yungbote/suplementor-backend/internal/http/middleware"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string
	RequestTimeout time.Duration

	AdminMiddleware *httpMW.AdminAuthMiddleware

	HealthHandler         *httpH.HealthHandler
	SupplementHandler     *httpH.SupplementHandler
	RecommendationHandler *httpH.RecommendationHandler
	InteractionHandler    *httpH.InteractionHandler
	KnowledgeGraphHandler *httpH.KnowledgeGraphHandler
	AdminHandler          *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.RequestTimeout(cfg.RequestTimeout))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Catalog
		if cfg.SupplementHandler != nil {
			api.GET("/supplements", cfg.SupplementHandler.List)
			api.GET("/supplements/:id", cfg.SupplementHandler.Get)
			api.POST("/supplements/compare", cfg.SupplementHandler.Compare)
		}

		// Interactions
		if cfg.InteractionHandler != nil {
			api.POST("/interactions/analyze", cfg.InteractionHandler.Analyze)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			api.POST("/recommendations", cfg.RecommendationHandler.Recommend)
			api.POST("/recommendations/stack", cfg.RecommendationHandler.BuildStack)
			api.POST("/recommendations/goals/suggest", cfg.RecommendationHandler.SuggestGoals)
		}

		// Knowledge graph
		if cfg.KnowledgeGraphHandler != nil {
			api.GET("/knowledge-graph", cfg.KnowledgeGraphHandler.Get)
		}
	}

	admin := api.Group("/admin")
	{
		if cfg.AdminMiddleware != nil {
			admin.Use(cfg.AdminMiddleware.RequireAdmin())
		} else {
			admin.Use(func(c *gin.Context) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": gin.H{"message": "admin api disabled", "code": "admin_disabled"},
				})
			})
		}

		if cfg.AdminHandler != nil {
			admin.PUT("/supplements", cfg.AdminHandler.UpsertSupplements)
			admin.DELETE("/supplements/:id", cfg.AdminHandler.DeleteSupplement)
			admin.PUT("/knowledge/nodes", cfg.AdminHandler.UpsertNodes)
			admin.PUT("/knowledge/relationships", cfg.AdminHandler.UpsertRelationships)
			admin.POST("/knowledge-graph/sync", cfg.AdminHandler.SyncGraph)
			admin.POST("/cache/purge", cfg.AdminHandler.PurgeCaches)
		}
	}

	return r
}
