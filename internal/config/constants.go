package config

import "time"

const (
	envPort           = "PORT"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envStoreBackend   = "STORE_BACKEND"
	envDataDir        = "DATA_DIR"
	envRedisURL       = "REDIS_URL"
	envRedisPrefix    = "REDIS_KEY_PREFIX"
	envDatabaseURL    = "DATABASE_URL"
	envSQLitePath     = "SQLITE_PATH"
	envImportDir      = "IMPORT_DIR"
	envImportInterval = "IMPORT_INTERVAL"
	envSeasonPrefix   = "SEASON_PREFIX"
	envSyntheticSeed  = "SYNTHETIC_SEED"
	envCORSOrigin     = "CORS_ORIGIN"
	envMaxUploadBytes = "MAX_UPLOAD_BYTES"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort         = "4000"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultStoreBackend = "memory"
	defaultDataDir      = "data"
	defaultRedisPrefix  = "leaguestats:"
	defaultSQLitePath   = "data/leagues.db"
	// Inbox scans are cheap; once a minute keeps dropped files from sitting long.
	defaultImportInterval = 1 * Duration(time.Minute)
	defaultSeasonPrefix   = "Season"
	defaultCORSOrigin     = "*"
	defaultMaxUploadBytes = 5 << 20
	defaultMetricsPort    = "9090"
)
