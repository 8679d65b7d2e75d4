package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds process-wide settings, read once at startup from the
// environment (godotenv is loaded by main before this runs).
type Config struct {
	DatabaseURL     string
	MailerLiteToken string
	MailerLiteURL   string
	AdminAPIToken   string
	Port            string
	GroupsFile      string
	CORSOrigins     string
	RateLimitPerMin int
}

// Load reads the configuration from environment variables. Missing required
// variables are collected and reported together.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.MailerLiteToken = os.Getenv("MAILERLITE_API_TOKEN")
	if cfg.MailerLiteToken == "" {
		missing = append(missing, "MAILERLITE_API_TOKEN")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.MailerLiteURL = getEnvString("MAILERLITE_API_URL", "")
	cfg.AdminAPIToken = os.Getenv("ADMIN_API_TOKEN")
	cfg.Port = getEnvString("PORT", "8080")
	cfg.GroupsFile = getEnvString("GROUPS_FILE", "groups.yaml")
	cfg.CORSOrigins = getEnvString("CORS_ALLOWED_ORIGINS", "*")
	cfg.RateLimitPerMin = getEnvInt("SUBMIT_RATE_LIMIT", 10)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
