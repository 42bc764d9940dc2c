package config

import "strings"

// Store backends understood by the server.
const (
	StoreMemory   = "memory"
	StoreFS       = "fs"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// StoreConfig selects and configures the league store backend.
type StoreConfig struct {
	Backend     string
	DataDir     string
	RedisURL    string
	RedisPrefix string
	DatabaseURL string
	SQLitePath  string
}

func loadStore() StoreConfig {
	return StoreConfig{
		Backend:     strings.ToLower(envOrDefault(envStoreBackend, defaultStoreBackend)),
		DataDir:     envOrDefault(envDataDir, defaultDataDir),
		RedisURL:    envOrDefault(envRedisURL, ""),
		RedisPrefix: envOrDefault(envRedisPrefix, defaultRedisPrefix),
		DatabaseURL: envOrDefault(envDatabaseURL, ""),
		SQLitePath:  envOrDefault(envSQLitePath, defaultSQLitePath),
	}
}
