package app

import (
	"time"

	"github.com/yungbote/studygroup-backend/internal/clients/redis"
	"github.com/yungbote/studygroup-backend/internal/data/db"
	"github.com/yungbote/studygroup-backend/internal/observability"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
	"github.com/yungbote/studygroup-backend/internal/utils"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port           string
	GinMode        string
	CORSOrigins    []string
	RequestTimeout time.Duration

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DBDriver   string
	SQLitePath string
	Postgres   db.PostgresConfig

	Redis           redis.Config
	CatalogCacheTTL time.Duration

	RecentLogLimit          int
	RecommendationListLimit int

	MetricsEnabled bool
	Otel           observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	return Config{
		Port:           utils.GetEnv("PORT", "8080", log),
		GinMode:        utils.GetEnv("GIN_MODE", "release", log),
		CORSOrigins:    utils.SplitCSV(utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)),
		RequestTimeout: utils.GetEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second, log),

		JWTSecretKey:   utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,

		DBDriver:   utils.GetEnv("DB_DRIVER", DriverPostgres, log),
		SQLitePath: utils.GetEnv("SQLITE_PATH", "studygroup.db", log),
		Postgres: db.PostgresConfig{
			Host:         utils.GetEnv("POSTGRES_HOST", "localhost", log),
			Port:         utils.GetEnv("POSTGRES_PORT", "5432", log),
			User:         utils.GetEnv("POSTGRES_USER", "postgres", log),
			Password:     utils.GetEnv("POSTGRES_PASSWORD", "", log),
			Name:         utils.GetEnv("POSTGRES_NAME", "studygroup", log),
			MaxOpenConns: utils.GetEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 20, log),
			MaxIdleConns: utils.GetEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5, log),
		},

		Redis: redis.Config{
			Addr:     utils.GetEnv("REDIS_ADDR", "", log),
			Password: utils.GetEnv("REDIS_PASSWORD", "", log),
			DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		},
		CatalogCacheTTL: utils.GetEnvAsDuration("CATALOG_CACHE_TTL", 10*time.Minute, log),

		RecentLogLimit:          utils.GetEnvAsInt("RECENT_LOG_LIMIT", 50, log),
		RecommendationListLimit: utils.GetEnvAsInt("RECOMMENDATION_LIST_LIMIT", 5, log),

		MetricsEnabled: observability.Enabled(),
		Otel: observability.OtelConfig{
			Enabled:     utils.GetEnvAsBool("OTEL_ENABLED", false, log),
			ServiceName: utils.GetEnv("OTEL_SERVICE_NAME", "studygroup", log),
			Environment: utils.GetEnv("OTEL_ENVIRONMENT", "development", log),
			Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
			Endpoint:    utils.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(utils.GetEnv("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    utils.GetEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: utils.GetEnvAsFloat("OTEL_SAMPLE_RATIO", 1, log),
		},
	}
}
