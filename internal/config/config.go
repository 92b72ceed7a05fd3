package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultJWTSecret = "change-me-in-production"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	HistoryDatabase = "database"
	HistoryRedis    = "redis"
	HistoryMemory   = "memory"
)

type Config struct {
	Port      string
	JwtSecret string
	TokenTTL  time.Duration

	DbDriver  string
	DbPath    string
	DbURL     string
	DbTimeout time.Duration

	HistoryStore string
	HistoryLimit int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ClassifierMode string

	OCRCommand     string
	OCRLang        string
	OCRTimeout     time.Duration
	MaxUploadBytes int64

	TrustedOrigins []string

	LogLevel  string
	LogFormat string
}

// UsingDefaultSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsingDefaultSecret() bool {
	return c.JwtSecret == DefaultJWTSecret
}

// Load reads the configuration from a .env file or environment variables and returns a Config struct.
// Every variable has a default; malformed values are reported together.
func Load() (*Config, error) {
	// Try to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	p := &parser{}
	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		JwtSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:  p.duration("TOKEN_TTL", 7*24*time.Hour),

		DbDriver:  strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DbPath:    getEnv("DB_PATH", "phishguard.db"),
		DbURL:     os.Getenv("DATABASE_URL"),
		DbTimeout: p.duration("DB_TIMEOUT", 5*time.Second),

		HistoryStore: strings.ToLower(getEnv("HISTORY_STORE", HistoryDatabase)),
		HistoryLimit: p.integer("HISTORY_LIMIT", 100),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       p.integer("REDIS_DB", 0),

		ClassifierMode: strings.ToLower(getEnv("CLASSIFIER_MODE", "weighted")),

		OCRCommand:     getEnv("OCR_COMMAND", "tesseract"),
		OCRLang:        getEnv("OCR_LANG", "eng"),
		OCRTimeout:     p.duration("OCR_TIMEOUT", 20*time.Second),
		MaxUploadBytes: int64(p.integer("MAX_UPLOAD_BYTES", 10<<20)),

		TrustedOrigins: splitList(getEnv("TRUSTED_ORIGINS", "*")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	p.oneOf("DB_DRIVER", cfg.DbDriver, DriverSQLite, DriverPostgres)
	p.oneOf("HISTORY_STORE", cfg.HistoryStore, HistoryDatabase, HistoryRedis, HistoryMemory)
	p.oneOf("CLASSIFIER_MODE", cfg.ClassifierMode, "weighted", "density")
	p.oneOf("LOG_FORMAT", cfg.LogFormat, "text", "json")

	if cfg.DbDriver == DriverPostgres && cfg.DbURL == "" {
		p.fail("DATABASE_URL is required when DB_DRIVER=postgres")
	}
	if cfg.HistoryLimit <= 0 {
		p.fail(fmt.Sprintf("HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit))
	}
	if cfg.MaxUploadBytes <= 0 {
		p.fail(fmt.Sprintf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes))
	}

	if len(p.problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(p.problems, "; "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser collects problems so Load can report all of them at once.
type parser struct {
	problems []string
}

func (p *parser) fail(msg string) {
	p.problems = append(p.problems, msg)
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		p.fail(fmt.Sprintf("%s must be a positive duration, got %q", key, raw))
		return fallback
	}
	return d
}

func (p *parser) integer(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return fallback
	}
	return n
}

func (p *parser) oneOf(key, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	p.fail(fmt.Sprintf("%s must be one of %s, got %q", key, strings.Join(allowed, "|"), value))
}
