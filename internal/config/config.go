package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort           string
	DatabaseURL        string
	APIKey             string
	LogLevel           string
	FiberPrefork       bool
	TelegramValidation bool
	FutureTolerance    time.Duration
	WorkerBufferSize   int
	WorkerBatchSize    int
	WorkerFlushEvery   time.Duration
	DBMaxConns         int32
	DBMinConns         int32
	DBMaxConnLifetime  time.Duration
	DBMaxConnIdleTime  time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", ":8080"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		FiberPrefork:       parseBoolEnv("FIBER_PREFORK", false),
		TelegramValidation: parseBoolEnv("TELEGRAM_VALIDATION", false),
		FutureTolerance:    parseDurationEnv("FUTURE_TOLERANCE", 5*time.Minute),
		WorkerBufferSize:   parseIntEnv("WORKER_BUFFER_SIZE", 1024),
		WorkerBatchSize:    parseIntEnv("WORKER_BATCH_SIZE", 100),
		WorkerFlushEvery:   parseDurationEnv("WORKER_FLUSH_EVERY", time.Second),
		DBMaxConns:         parseInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:         parseInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnLifetime:  parseDurationEnv("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBMaxConnIdleTime:  parseDurationEnv("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	cfg.APIKey = os.Getenv("API_KEY")
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseInt32Env(key string, fallback int32) int32 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return int32(parsed)
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
