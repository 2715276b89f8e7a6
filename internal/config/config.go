package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath      string
	CatalogPath       string
	SessionSecret     string
	OIDCIssuer        string
	OIDCClientID      string
	OIDCClientSecret  string
	OIDCRedirectURL   string
	ExpiryWarningDays int
	LogLevel          string
	Port              string
}

func Load() (Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	godotenv.Load()

	config := Config{
		DatabasePath:     envOrDefault("DATABASE_PATH", "./data/cook-proj.db"),
		CatalogPath:      envOrDefault("CATALOG_PATH", "./data/catalog"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		Port:             envOrDefault("PORT", "8080"),
	}

	days, err := strconv.Atoi(envOrDefault("EXPIRY_WARNING_DAYS", "3"))
	if err != nil || days < 0 {
		return Config{}, fmt.Errorf("EXPIRY_WARNING_DAYS must be a non-negative integer")
	}
	config.ExpiryWarningDays = days

	if config.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
