// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"runtime"
	"strconv"
)

// Defaults for the inference pipeline.
const (
	DefaultSchemaCacheMaxItems = 64
	DefaultMaxCorpusBytes      = 32 << 20 // 32 MiB
	DefaultMaxStatsGroups      = 200
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	Workers             int // SCHEMAGEN_WORKERS, default GOMAXPROCS
	SchemaCacheMaxItems int // SCHEMA_CACHE_MAX_ITEMS, default 64
	MaxCorpusBytes      int // MAX_CORPUS_BYTES, default 32 MiB; 0 disables the cap
	MaxStatsGroups      int // MAX_STATS_GROUPS, default 200

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Workers:             getEnvInt("SCHEMAGEN_WORKERS", runtime.GOMAXPROCS(0)),
		SchemaCacheMaxItems: getEnvInt("SCHEMA_CACHE_MAX_ITEMS", DefaultSchemaCacheMaxItems),
		MaxCorpusBytes:      getEnvInt("MAX_CORPUS_BYTES", DefaultMaxCorpusBytes),
		MaxStatsGroups:      getEnvInt("MAX_STATS_GROUPS", DefaultMaxStatsGroups),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
