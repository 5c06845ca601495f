package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Redis
	RedisURL string

	// Services
	IngestServiceURL string

	// Validation behavior
	StrictPipeline         bool // abort downstream stages on upstream errors
	EnforceParentAgreement bool // cross-check sub-subcategory category_id against its subcategory

	// Upload behavior
	NavigationDelay time.Duration // pause before redirecting after a successful submission

	// Limits
	MaxUploadBytes int64
}

func Load() *Config {
	strictPipeline, _ := strconv.ParseBool(getEnv("STRICT_PIPELINE", "false"))
	parentAgreement, _ := strconv.ParseBool(getEnv("ENFORCE_PARENT_AGREEMENT", "false"))
	navigationDelayMs, _ := strconv.Atoi(getEnv("NAVIGATION_DELAY_MS", "1500"))
	maxUploadMB, _ := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "20"))

	return &Config{
		Port:        getEnv("PORT", "8093"),
		Environment: getEnv("ENVIRONMENT", "development"),

		RedisURL: getEnv("REDIS_URL", "redis://redis.redis-marketplace.svc.cluster.local:6379/0"),

		IngestServiceURL: getEnv("INGEST_SERVICE_URL", "http://catalog-backend:8080"),

		StrictPipeline:         strictPipeline,
		EnforceParentAgreement: parentAgreement,

		NavigationDelay: time.Duration(navigationDelayMs) * time.Millisecond,

		MaxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
