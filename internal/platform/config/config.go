package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	LogLevel      string
	// StorageBackend selects "postgres" or "memory" for transaction records.
	StorageBackend string

	JWTSecret string
	JWTIssuer string
	// GoogleClientID enables Google ID tokens as an alternative bearer credential.
	GoogleClientID  string `mapstructure:"GOOGLE_CLIENT_ID"`
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`

	DocumentStorageDir    string
	DocumentBaseURL       string
	DocumentMaxSizeBytes  int64
	DocumentAllowedTypes  []string
	UploadTimeout         time.Duration
	PaymentTimeout        time.Duration
	OverdueSweepInterval  time.Duration
	MutationRateLimit     string
	RiskDueSoonDays       int
	UpcomingDeadlineDays  int
	RecentActivityEntries int

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_BACKEND", "postgres")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("DOCUMENT_STORAGE_DIR", "./data/documents")
	viper.SetDefault("DOCUMENT_BASE_URL", "/files")
	viper.SetDefault("DOCUMENT_MAX_SIZE_BYTES", int64(50<<20))
	viper.SetDefault("DOCUMENT_ALLOWED_TYPES", "")
	viper.SetDefault("UPLOAD_TIMEOUT", "2m")
	viper.SetDefault("PAYMENT_TIMEOUT", "30s")
	viper.SetDefault("OVERDUE_SWEEP_INTERVAL", "15m")
	viper.SetDefault("MUTATION_RATE_LIMIT", "60-M")
	viper.SetDefault("RISK_DUE_SOON_DAYS", 7)
	viper.SetDefault("UPCOMING_DEADLINE_WINDOW_DAYS", 30)
	viper.SetDefault("RECENT_ACTIVITY_ENTRIES", 10)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StorageBackend = strings.ToLower(viper.GetString("STORAGE_BACKEND"))
	if cfg.StorageBackend != "postgres" && cfg.StorageBackend != "memory" {
		log.Printf("Warning: Unknown STORAGE_BACKEND ('%s'). Defaulting to postgres.\n", cfg.StorageBackend)
		cfg.StorageBackend = "postgres"
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageBackend == "postgres" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")

	cfg.DocumentStorageDir = viper.GetString("DOCUMENT_STORAGE_DIR")
	cfg.DocumentBaseURL = strings.TrimRight(viper.GetString("DOCUMENT_BASE_URL"), "/")
	cfg.DocumentMaxSizeBytes = viper.GetInt64("DOCUMENT_MAX_SIZE_BYTES")
	if cfg.DocumentMaxSizeBytes <= 0 {
		cfg.DocumentMaxSizeBytes = 50 << 20
		log.Printf("Warning: Invalid DOCUMENT_MAX_SIZE_BYTES. Defaulting to %d.\n", cfg.DocumentMaxSizeBytes)
	}
	cfg.DocumentAllowedTypes = splitList(viper.GetString("DOCUMENT_ALLOWED_TYPES"))

	cfg.UploadTimeout = durationOrDefault("UPLOAD_TIMEOUT", 2*time.Minute)
	cfg.PaymentTimeout = durationOrDefault("PAYMENT_TIMEOUT", 30*time.Second)
	cfg.OverdueSweepInterval = durationOrDefault("OVERDUE_SWEEP_INTERVAL", 15*time.Minute)

	cfg.MutationRateLimit = viper.GetString("MUTATION_RATE_LIMIT")
	cfg.RiskDueSoonDays = intOrDefault("RISK_DUE_SOON_DAYS", 7)
	cfg.UpcomingDeadlineDays = intOrDefault("UPCOMING_DEADLINE_WINDOW_DAYS", 30)
	cfg.RecentActivityEntries = intOrDefault("RECENT_ACTIVITY_ENTRIES", 10)

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// durationOrDefault parses key as a duration. "0" is valid and disables interval-driven features.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func intOrDefault(key string, def int) int {
	v := viper.GetInt(key)
	if v <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, viper.GetString(key), def)
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
