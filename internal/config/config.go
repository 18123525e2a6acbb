package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// Gemini gateway settings
	GeminiAPIKey   string
	TextModel      string
	URLModel       string
	GatewayTimeout time.Duration
	MaxSourceChars int

	// Generation cache settings
	RedisURL     string
	CacheEnabled bool
	CacheTTL     time.Duration
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		TextModel:      getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		URLModel:       getEnv("GEMINI_URL_MODEL", "gemini-3-pro-preview"),
		GatewayTimeout: getEnvDuration("GATEWAY_TIMEOUT", 60*time.Second),
		MaxSourceChars: getEnvInt("MAX_SOURCE_CHARS", 30000),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheEnabled:   getEnvBool("CACHE_ENABLED", false),
		CacheTTL:       getEnvDuration("CACHE_TTL", 15*time.Minute),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
