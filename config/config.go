package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingDatabaseURL is returned by Load when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("MONGODB_URI (or DATABASE_URL) environment variable is not set")

// Store kinds selected by the connection string scheme.
const (
	StoreMongo    = "mongodb"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	DBUrl                  string
	DBName                 string
	Environment            string
	Port                   string
	ServerSelectionTimeout time.Duration
	RequestTimeout         time.Duration
	AllowedOrigins         []string
	Mail                   MailConfig
}

// MailConfig holds the booking confirmation mailer settings.
type MailConfig struct {
	Provider        string
	FromAddress     string
	FromName        string
	SESRegion       string
	AccessKeyID     string
	SecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on the system environment only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:            env,
		DBUrl:                  os.Getenv("MONGODB_URI"),
		DBName:                 os.Getenv("MONGODB_DB"),
		Port:                   os.Getenv("PORT"),
		ServerSelectionTimeout: durationEnv("DB_SERVER_SELECTION_TIMEOUT", 5*time.Second),
		RequestTimeout:         durationEnv("REQUEST_TIMEOUT", 10*time.Second),
		AllowedOrigins:         splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Mail: MailConfig{
			Provider:        os.Getenv("MAIL_PROVIDER"),
			FromAddress:     os.Getenv("MAIL_FROM_ADDRESS"),
			FromName:        os.Getenv("MAIL_FROM_NAME"),
			SESRegion:       os.Getenv("AWS_SES_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}
	if cfg.DBUrl == "" {
		cfg.DBUrl = os.Getenv("DATABASE_URL")
	}
	if cfg.DBUrl == "" {
		return nil, ErrMissingDatabaseURL
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "devevent"
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "noop"
	}

	return cfg, nil
}

// Store returns StorePostgres for postgres:// and postgresql:// URLs and StoreMongo otherwise.
func (c *Config) Store() string {
	if strings.HasPrefix(c.DBUrl, "postgres://") || strings.HasPrefix(c.DBUrl, "postgresql://") {
		return StorePostgres
	}
	return StoreMongo
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s %q, using %s", key, s, fallback)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
