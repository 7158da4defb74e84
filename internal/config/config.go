// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	DBPath      string
	JWT         JWTConfig
	Log         LogConfig

	// EnableReset exposes the destructive /api/reset endpoint. Never set
	// this outside development.
	EnableReset bool
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type LogConfig struct {
	Level  slog.Level
	Format string
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	env := getEnv("APP_ENV", "development")

	return &Config{
		Environment: env,
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "./data/shoplist.db"),
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "change-this-in-production"),
			TokenTTL: getDuration("JWT_TTL", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level:  getLevel("LOG_LEVEL", slog.LevelInfo),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		EnableReset: getBool("ENABLE_RESET", env == "development"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("invalid duration, using fallback", "key", key, "value", value)
	}
	return fallback
}

func getLevel(key string, fallback slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv(key)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
