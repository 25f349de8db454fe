package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/studygroup-backend/internal/http/handlers"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type Handlers struct {
	Health           *httpH.HealthHandler
	ActivityTracking *httpH.ActivityTrackingHandler
	Catalog          *httpH.CatalogHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:           httpH.NewHealthHandler(db),
		ActivityTracking: httpH.NewActivityTrackingHandler(services.ActivityTracking, services.Insights),
		Catalog:          httpH.NewCatalogHandler(services.Catalog),
	}
}
