package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/studygroup-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studygroup-backend/internal/http/middleware"
	"github.com/yungbote/studygroup-backend/internal/observability"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

const (
	healthPath  = "/healthz"
	metricsPath = "/metrics"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	ActivityTrackingHandler *httpH.ActivityTrackingHandler
	CatalogHandler          *httpH.CatalogHandler
	HealthHandler           *httpH.HealthHandler

	Metrics        *observability.Metrics
	TracingService string // otelgin is installed when non-empty
	CORSOrigins    []string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, healthPath, metricsPath))
	r.Use(httpMW.AttachRequestContext(cfg.RequestTimeout))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET(healthPath, cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	protected := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Activity tracking & recommendations
		if h := cfg.ActivityTrackingHandler; h != nil {
			ml := protected.Group("/ml")
			ml.POST("/log", h.LogActivity)
			ml.PUT("/preferences", h.UpdatePreferences)
			ml.GET("/recommendations", h.GetRecommendations)
			ml.GET("/stats", h.GetStats)
			ml.GET("/patterns", h.GetPatterns)
			ml.GET("/learning-path", h.GetLearningPath)
		}

		// Catalog
		if h := cfg.CatalogHandler; h != nil {
			protected.GET("/activities", h.ListActivities)
			protected.GET("/activities/:id", h.GetActivity)
			protected.GET("/activities/:id/subtopics/:subtopicId", h.GetSubtopic)
			protected.POST("/activities/subtopics/:subtopicId/complete", h.CompleteSubtopic)
		}
	}

	return r
}
