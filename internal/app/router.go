package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/studygroup-backend/internal/http"
	"github.com/yungbote/studygroup-backend/internal/observability"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) apphttp.RouterConfig {
	rc := apphttp.RouterConfig{
		Log:                     log,
		AuthMiddleware:          middleware.Auth,
		ActivityTrackingHandler: handlers.ActivityTracking,
		CatalogHandler:          handlers.Catalog,
		HealthHandler:           handlers.Health,
		Metrics:                 metrics,
		CORSOrigins:             cfg.CORSOrigins,
		RequestTimeout:          cfg.RequestTimeout,
	}
	if cfg.Otel.Enabled {
		rc.TracingService = cfg.Otel.ServiceName
	}
	return rc
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *gin.Engine {
	return apphttp.NewRouter(routerConfig(log, cfg, handlers, middleware, metrics))
}
