package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	DBName      string
	Port        string
	GinMode     string
	CORSOrigins []string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Scraper
	ScraperHeadless   bool
	DefaultMaxPosts   int
	MaxPostsPerScrape int

	// Redis / queue
	RedisURL          string
	RedisPassword     string
	RedisDB           int
	WorkerConcurrency int

	// Periodic creator refresh (worker)
	RefreshEnabled  bool
	RefreshInterval int // hours
	RefreshCreators int // how many recent creator pages to re-enqueue

	// Telemetry
	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017/ltk_captions"),
		DBName:      getEnv("DB_NAME", "ltk_captions"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		ScraperHeadless:   getEnvBool("SCRAPER_HEADLESS", true),
		DefaultMaxPosts:   getEnvInt("SCRAPER_DEFAULT_MAX_POSTS", 10),
		MaxPostsPerScrape: getEnvInt("SCRAPER_MAX_POSTS", 50),

		RedisURL:          getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 2),

		RefreshEnabled:  getEnvBool("REFRESH_ENABLED", false),
		RefreshInterval: getEnvInt("REFRESH_INTERVAL_HOURS", 24),
		RefreshCreators: getEnvInt("REFRESH_CREATOR_PAGES", 20),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// Validate required fields
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	return cfg, nil
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
