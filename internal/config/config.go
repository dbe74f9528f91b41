package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string // Empty means the in-memory store is used
	RedisURL           string // Empty disables the token cache
	FrontendURL        string // Base URL encoded into feed item QR codes
	GinMode            string
	MinPasswordLength  int
	TokenCacheTTL      time.Duration
	RateLimitRPS       float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst     int     // Burst size for rate limiting
	RateLimitAuthRPS   float64 // Rate limit for signup/token endpoints (stricter)
	RateLimitAuthBurst int     // Burst size for auth endpoints
	ShutdownTimeout    time.Duration
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		MinPasswordLength:  getEnvInt("MIN_PASSWORD_LENGTH", 5),
		TokenCacheTTL:      getEnvDuration("TOKEN_CACHE_TTL_MINUTES", 15, time.Minute),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT_SECONDS", 15, time.Second),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration reads an integer count of unit; negative values fall back to the default.
func getEnvDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	n := getEnvInt(key, defaultValue)
	if n < 0 {
		n = defaultValue
	}
	return time.Duration(n) * unit
}
