package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Limiter LimiterConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	PollInterval   time.Duration
}

type LimiterConfig struct {
	ActionsPerSecond float64
	Burst            int
}

// Load reads .env (if present) and the process environment into a Config,
// falling back to defaults suited for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "8080"),
			Environment:        getEnv("APP_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/swipedeck.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:9000"),
			RequestTimeout: getDuration("BACKEND_REQUEST_TIMEOUT", 10*time.Second),
			PollInterval:   getDuration("ENGAGEMENT_POLL_INTERVAL", time.Second),
		},
		Limiter: LimiterConfig{
			ActionsPerSecond: getFloat("ACTION_RATE_PER_SECOND", 5),
			Burst:            getInt("ACTION_RATE_BURST", 10),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid int for %s, using default %d", key, fallback)
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid float for %s, using default %v", key, fallback)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default %s", key, fallback)
	}
	return fallback
}
