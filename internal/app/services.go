package app

import (
	"github.com/yungbote/studygroup-backend/internal/data/catalogcache"
	"github.com/yungbote/studygroup-backend/internal/observability"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
	"github.com/yungbote/studygroup-backend/internal/services"
)

type Services struct {
	Auth             services.AuthService
	Recommendation   services.RecommendationService
	ActivityTracking services.ActivityTrackingService
	Catalog          services.CatalogService
	Insights         services.InsightsService

	CatalogCache catalogcache.Catalog
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	var backend catalogcache.Backend
	if clients.Redis != nil {
		backend = catalogcache.NewRedisBackend(clients.Redis)
	}
	catalog := catalogcache.New(reposet.Catalog, backend, metrics, log, catalogcache.Config{TTL: cfg.CatalogCacheTTL})

	recs := services.NewRecommendationService(
		log,
		reposet.ActivityLog,
		reposet.UserPreference,
		reposet.SubtopicCompletion,
		reposet.MLRecommendation,
		catalog,
		metrics,
		services.RecommendationConfig{RecentLogLimit: cfg.RecentLogLimit},
	)
	tracking := services.NewActivityTrackingService(
		log,
		reposet.User,
		reposet.Catalog,
		reposet.ActivityLog,
		reposet.UserPreference,
		reposet.MLRecommendation,
		recs,
		metrics,
		cfg.RecommendationListLimit,
	)

	return Services{
		Auth:             services.NewAuthService(log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Recommendation:   recs,
		ActivityTracking: tracking,
		Catalog:          services.NewCatalogService(log, catalog, reposet.Catalog, reposet.SubtopicCompletion, reposet.User, tracking),
		Insights:         services.NewInsightsService(log, reposet.ActivityLog, reposet.SubtopicCompletion, catalog),
		CatalogCache:     catalog,
	}
}
