package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// TrackingBaseURL is the externally visible base used to build booking
	// tracking links, e.g. "https://api.example.com".
	TrackingBaseURL string

	// SearchSyncInterval drives the periodic search index reconciliation sweep.
	SearchSyncInterval time.Duration

	// GatewayTimeout bounds a single payment gateway charge attempt.
	GatewayTimeout time.Duration

	// TrackingQueueSize is the buffer of the async tracking ingest worker.
	TrackingQueueSize int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == prodString

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.TrackingBaseURL = getEnv("TRACKING_BASE_URL", "http://localhost:8080")

	cfg.SearchSyncInterval, err = getEnvAsDuration("SEARCH_SYNC_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.GatewayTimeout, err = getEnvAsDuration("GATEWAY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.TrackingQueueSize, err = getEnvAsInt("TRACKING_QUEUE_SIZE", 256)
	if err != nil {
		return nil, fmt.Errorf("invalid TRACKING_QUEUE_SIZE: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer, falling back
// to the default when unset and erroring when set but malformed.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// (e.g. "10s", "15m").
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
