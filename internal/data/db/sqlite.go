package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

// OpenSQLite opens a SQLite database for local runs. Use ":memory:" for an
// ephemeral database; the pool is pinned to one connection so every query
// sees the same in-memory schema.
func OpenSQLite(path string, logg *logger.Logger, silent bool) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:"
	}
	var gl gormLogger.Interface = newGormLogger()
	if silent {
		gl = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if logg != nil {
		logg.With("service", "SQLite").Info("opened sqlite database", "path", path)
	}
	return db, nil
}
