package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SCHEMAGEN_WORKERS", "SCHEMA_CACHE_MAX_ITEMS", "MAX_CORPUS_BYTES", "LOG_LEVEL", "LOG_COMPRESS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, DefaultSchemaCacheMaxItems, cfg.SchemaCacheMaxItems)
	assert.Equal(t, DefaultMaxCorpusBytes, cfg.MaxCorpusBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCHEMAGEN_WORKERS", "3")
	t.Setenv("SCHEMA_CACHE_MAX_ITEMS", "not-a-number")
	t.Setenv("MAX_CORPUS_BYTES", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, DefaultSchemaCacheMaxItems, cfg.SchemaCacheMaxItems, "unparsable values fall back")
	assert.Equal(t, 0, cfg.MaxCorpusBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogCompress)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true}, {"yes", true}, {"on", true}, {"true", true},
		{"0", false}, {"no", false}, {"off", false}, {"false", false},
		{"maybe", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SCHEMAGEN_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, getEnvBool("SCHEMAGEN_TEST_BOOL", true))
		})
	}
}
