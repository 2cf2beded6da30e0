package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	Environment   string
	AdminUsername string
	AdminPassword string
	DefaultYear   int
	SeedFile      string
	RunMigrations bool
	RunSeed       bool
	CORSOrigins   []string
}

func Load() Config {
	return Config{
		Addr:          getEnv("APP_ADDR", ":8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 12*time.Hour),
		Environment:   getEnv("APP_ENV", "development"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "123"),
		DefaultYear:   getEnvInt("DEFAULT_YEAR", time.Now().Year()),
		SeedFile:      getEnv("SEED_FILE", ""),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:       getEnvBool("RUN_SEED", true),
		CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.AdminPassword == "123" {
			return fmt.Errorf("ADMIN_PASSWORD must be changed from its default in production")
		}
	}
	if c.DefaultYear < 1970 {
		return fmt.Errorf("DEFAULT_YEAR must be a plausible calendar year")
	}
	return nil
}
