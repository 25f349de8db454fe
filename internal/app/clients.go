package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/studygroup-backend/internal/clients/redis"
	"github.com/yungbote/studygroup-backend/internal/data/db"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type Clients struct {
	Redis *goredis.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	rdb, err := redis.NewClient(ctx, log, cfg.Redis)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	return Clients{Redis: rdb}, nil
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

// OpenDatabase connects to the configured driver without migrating.
func OpenDatabase(log *logger.Logger, cfg Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case DriverSQLite:
		return db.OpenSQLite(cfg.SQLitePath, log, false)
	case DriverPostgres, "":
		pg, err := db.NewPostgresService(log, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return pg.DB(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
