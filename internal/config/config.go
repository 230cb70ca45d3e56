package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string

	LogLevel string
	LogFile  string

	Recommendations RecommendationConfig
}

// RecommendationConfig tunes the recommendation engine. All knobs are
// injected at construction so tests can vary them freely.
type RecommendationConfig struct {
	CacheTTL          time.Duration
	RecentWindowDays  int
	MaxSeeds          int
	PopularOversample int
	DefaultLimit      int
}

// DefaultRecommendationConfig returns the production defaults
func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		CacheTTL:          60 * time.Minute,
		RecentWindowDays:  30,
		MaxSeeds:          5,
		PopularOversample: 2,
		DefaultLimit:      25,
	}
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "tunewave")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")
		databaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	reco := DefaultRecommendationConfig()
	if v := getEnvInt("RECO_CACHE_TTL_MINUTES", 0); v > 0 {
		reco.CacheTTL = time.Duration(v) * time.Minute
	}
	if v := getEnvInt("RECO_RECENT_WINDOW_DAYS", 0); v > 0 {
		reco.RecentWindowDays = v
	}
	if v := getEnvInt("RECO_MAX_SEEDS", 0); v > 0 {
		reco.MaxSeeds = v
	}
	if v := getEnvInt("RECO_POPULAR_OVERSAMPLE", 0); v > 0 {
		reco.PopularOversample = v
	}

	tokenTTL := 24 * time.Hour
	if v := getEnvInt("TOKEN_TTL_MINUTES", 0); v > 0 {
		tokenTTL = time.Duration(v) * time.Minute
	}

	return &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		DatabaseURL:     databaseURL,
		JWTSecret:       []byte(jwtSecret),
		TokenTTL:        tokenTTL,
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:         getEnvOrDefault("LOG_FILE", "server.log"),
		Recommendations: reco,
	}, nil
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
