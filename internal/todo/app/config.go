package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string        // Optional: issuer claim for tokens (default: tasktab)
	JWTSecret      string        // Required: HS256 signing secret
	SessionTTL     time.Duration // Optional: session token lifetime (default: 24h)
	RecoverySecret string        // Optional: secret key gating superadmin recovery; empty disables it

	SeedAdminName     string // Optional: seeded superadmin display name (default: Super Admin)
	SeedAdminEmail    string // Optional: seeded superadmin email (default: admin@example.com)
	SeedAdminPassword string // Optional: seeded superadmin password (default: admin123)

	DatabaseFile string // Optional: path to SQLite database file (default: ./tasktab.db)
	PepperFile   string // Optional: path to pepper file for password hashing (default: ./pepper)

	ResetTokenTTL        time.Duration // Optional: password reset token lifetime (default: 30m)
	HousekeepingInterval time.Duration // Optional: expired-token purge interval (default: 1h)

	SMTPHost string // Optional: SMTP relay host; empty falls back to log-only mail
	SMTPPort int    // Optional: SMTP relay port (default: 587)
	SMTPUser string
	SMTPPass string
	SMTPFrom string // Optional: From address (default: no-reply@tasktab.local)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:         getEnvOrDefault("TASKTAB_ISSUER", "tasktab"),
		JWTSecret:      os.Getenv("TASKTAB_JWT_SECRET"),
		SessionTTL:     getEnvDurationOrDefault("TASKTAB_SESSION_TTL", 24*time.Hour),
		RecoverySecret: os.Getenv("TASKTAB_RECOVERY_SECRET"),

		SeedAdminName:     getEnvOrDefault("TASKTAB_SEED_ADMIN_NAME", "Super Admin"),
		SeedAdminEmail:    getEnvOrDefault("TASKTAB_SEED_ADMIN_EMAIL", "admin@example.com"),
		SeedAdminPassword: getEnvOrDefault("TASKTAB_SEED_ADMIN_PASSWORD", "admin123"),

		DatabaseFile: getEnvOrDefault("TASKTAB_DATABASE_FILE", "tasktab.db"),
		PepperFile:   getEnvOrDefault("TASKTAB_PEPPER_FILE", "pepper"),

		ResetTokenTTL:        getEnvDurationOrDefault("TASKTAB_RESET_TOKEN_TTL", 30*time.Minute),
		HousekeepingInterval: getEnvDurationOrDefault("TASKTAB_HOUSEKEEPING_INTERVAL", time.Hour),

		SMTPHost: os.Getenv("TASKTAB_SMTP_HOST"),
		SMTPPort: getEnvIntOrDefault("TASKTAB_SMTP_PORT", 587),
		SMTPUser: os.Getenv("TASKTAB_SMTP_USER"),
		SMTPPass: os.Getenv("TASKTAB_SMTP_PASS"),
		SMTPFrom: getEnvOrDefault("TASKTAB_SMTP_FROM", "no-reply@tasktab.local"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
