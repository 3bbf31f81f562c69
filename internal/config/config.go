package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// StoreMemory is the DATABASE_URL value that selects the in-memory store
// instead of Postgres. Useful for local development without a database.
const StoreMemory = "memory"

type Config struct {
	Port               string
	DatabaseURL        string
	BaseURL            string
	CorsAllowedOrigins []string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required (use \"memory\" for the in-memory store)")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
