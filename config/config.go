package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultDatabaseURL = "redis://127.0.0.1:6379/0"

// Config holds the process settings read at startup
type Config struct {
	DatabaseURL    string // Redis connection string
	DatabaseURLSet bool   // Whether DATABASE_URL was given explicitly
	Port           string
	StoreBackend   string // redis|memory
	CORSOrigins    []string
}

// Load reads an optional .env file and then the environment
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() Config {
	dbURL := os.Getenv("DATABASE_URL")
	return Config{
		DatabaseURL:    envOr("DATABASE_URL", defaultDatabaseURL),
		DatabaseURLSet: dbURL != "",
		Port:           envOr("PORT", "8000"),
		StoreBackend:   envOr("STORE_BACKEND", "redis"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "*"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func csvOr(key, def string) []string {
	raw := envOr(key, def)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
