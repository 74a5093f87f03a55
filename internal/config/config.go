package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	AutoMigrate bool // run pending migrations on startup
	CORSOrigins string
	AppBaseURL  string // public frontend URL, used in invitation links

	// Identity provider (JWKS endpoint of the hosted auth service)
	AuthJWKSURL string
	AuthIssuer  string

	// SMTP for invitation mail. Empty host means log-only delivery.
	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AutoMigrate: getEnv("AUTO_MIGRATE", "true") == "true",
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:3000"),

		AuthJWKSURL: getEnv("AUTH_JWKS_URL", ""),
		AuthIssuer:  getEnv("AUTH_ISSUER", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@localhost"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
	}
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
	}
	return defaultValue
}
