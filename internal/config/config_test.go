package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "JWT_SECRET", "TOKEN_TTL", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "DB_TIMEOUT",
	"HISTORY_STORE", "HISTORY_LIMIT", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"CLASSIFIER_MODE", "OCR_COMMAND", "OCR_LANG", "OCR_TIMEOUT", "MAX_UPLOAD_BYTES",
	"TRUSTED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every key; getEnv treats blank values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.True(t, cfg.UsingDefaultSecret())
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, DriverSQLite, cfg.DbDriver)
	assert.Equal(t, "phishguard.db", cfg.DbPath)
	assert.Equal(t, 5*time.Second, cfg.DbTimeout)
	assert.Equal(t, HistoryDatabase, cfg.HistoryStore)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, "weighted", cfg.ClassifierMode)
	assert.Equal(t, "tesseract", cfg.OCRCommand)
	assert.Equal(t, 20*time.Second, cfg.OCRTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.TrustedOrigins)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/phishguard")
	t.Setenv("HISTORY_STORE", "redis")
	t.Setenv("HISTORY_LIMIT", "25")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CLASSIFIER_MODE", "density")
	t.Setenv("OCR_TIMEOUT", "3s")
	t.Setenv("TRUSTED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.UsingDefaultSecret())
	assert.Equal(t, DriverPostgres, cfg.DbDriver)
	assert.Equal(t, HistoryRedis, cfg.HistoryStore)
	assert.Equal(t, 25, cfg.HistoryLimit)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "density", cfg.ClassifierMode)
	assert.Equal(t, 3*time.Second, cfg.OCRTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.TrustedOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"unknown history store", map[string]string{"HISTORY_STORE": "s3"}, "HISTORY_STORE"},
		{"unknown mode", map[string]string{"CLASSIFIER_MODE": "ml"}, "CLASSIFIER_MODE"},
		{"bad duration", map[string]string{"OCR_TIMEOUT": "soon"}, "OCR_TIMEOUT"},
		{"negative duration", map[string]string{"TOKEN_TTL": "-1h"}, "TOKEN_TTL"},
		{"bad integer", map[string]string{"HISTORY_LIMIT": "many"}, "HISTORY_LIMIT"},
		{"zero limit", map[string]string{"HISTORY_LIMIT": "0"}, "HISTORY_LIMIT"},
		{"zero upload size", map[string]string{"MAX_UPLOAD_BYTES": "0"}, "MAX_UPLOAD_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
