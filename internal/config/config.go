package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	Log            LogConfig
	Store          StoreConfig
	Import         ImportConfig
	SeasonPrefix   string
	SyntheticSeed  uint64
	CORSOrigin     string
	MaxUploadBytes int64
	Metrics        MetricsConfig
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// dotenvFiles are loaded before reading the environment; missing files are ignored.
var dotenvFiles = []string{".env"}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	_ = godotenv.Load(dotenvFiles...)

	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Store:          loadStore(),
		Import:         loadImport(),
		SeasonPrefix:   envOrDefault(envSeasonPrefix, defaultSeasonPrefix),
		SyntheticSeed:  uint64EnvOrDefault(envSyntheticSeed, 0),
		CORSOrigin:     envOrDefault(envCORSOrigin, defaultCORSOrigin),
		MaxUploadBytes: int64EnvOrDefault(envMaxUploadBytes, defaultMaxUploadBytes),
		Metrics:        loadMetrics(),
	}
}
