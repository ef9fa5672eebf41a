package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

// Config holds application configuration
type Config struct {
	Port string

	// Database
	DBDriver       string
	DBPath         string
	DatabaseURL    string
	MigrationsPath string // empty means embedded migrations

	// Routing
	MaxHops               int
	OptimizeFor           models.OptimizeFor
	TransferBufferMinutes float64
	GraphRefreshInterval  time.Duration // 0 disables periodic refresh

	// HTTP
	RateLimitPerMinute int
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, after an optional .env file
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	return &Config{
		Port: getEnv("PORT", ":8080"),

		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBPath:         getEnv("DB_PATH", "./data/ranks.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", ""),

		MaxHops:               getEnvInt("ROUTING_MAX_HOPS", models.DefaultMaxHops),
		OptimizeFor:           models.OptimizeFor(getEnv("ROUTING_OPTIMIZE_FOR", string(models.OptimizeFare))),
		TransferBufferMinutes: getEnvFloat("TRANSFER_BUFFER_MINUTES", 0),
		GraphRefreshInterval:  time.Duration(getEnvInt("GRAPH_REFRESH_INTERVAL", 300)) * time.Second,

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.TransferBufferMinutes < 0 {
		return fmt.Errorf("TRANSFER_BUFFER_MINUTES must not be negative: %v", c.TransferBufferMinutes)
	}
	return models.Constraints{MaxHops: c.MaxHops, OptimizeFor: c.OptimizeFor}.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s: %q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid number for %s: %q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
