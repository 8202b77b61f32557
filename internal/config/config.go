package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Storage      StorageConfig
	Notification NotificationConfig
	Admin        AdminConfig
	Trial        TrialConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
	// BookingRateLimit caps public bookings per client IP per minute
	BookingRateLimit int
}

// StorageConfig controls where uploaded voice notes live
type StorageConfig struct {
	Type             string
	BasePath         string
	BaseURL          string
	MaxVoiceNoteSize int64
}

type NotificationConfig struct {
	Retention     time.Duration
	PurgeInterval time.Duration
}

// AdminConfig seeds the first admin account on an empty database
type AdminConfig struct {
	Username string
	Password string
	FullName string
}

// TrialConfig gates the API after ExpiresAt when set
type TrialConfig struct {
	ExpiresAt *time.Time
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "carwash"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	bookingLimit, err := strconv.Atoi(getEnv("BOOKING_RATE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_RATE_LIMIT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "carwash-pos"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Africa/Algiers"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		BookingRateLimit: bookingLimit,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Storage configuration
	maxVoice, err := strconv.ParseInt(getEnv("STORAGE_MAX_VOICE_NOTE_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_MAX_VOICE_NOTE_BYTES: %w", err)
	}
	config.Storage = StorageConfig{
		Type:             getEnv("STORAGE_TYPE", "local"),
		BasePath:         getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:          getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		MaxVoiceNoteSize: maxVoice,
	}

	// Notification housekeeping
	retention, err := time.ParseDuration(getEnv("NOTIFICATION_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_RETENTION: %w", err)
	}
	purgeInterval, err := time.ParseDuration(getEnv("NOTIFICATION_PURGE_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_PURGE_INTERVAL: %w", err)
	}
	config.Notification = NotificationConfig{
		Retention:     retention,
		PurgeInterval: purgeInterval,
	}

	config.Admin = AdminConfig{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Password: getEnv("ADMIN_PASSWORD", ""),
		FullName: getEnv("ADMIN_FULL_NAME", "Administrator"),
	}

	if raw := getEnv("TRIAL_EXPIRES_AT", ""); raw != "" {
		expiresAt, err := parseTrialDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TRIAL_EXPIRES_AT: %w", err)
		}
		config.Trial.ExpiresAt = &expiresAt
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("STORAGE_TYPE %q is not supported", c.Storage.Type)
	}
	return nil
}

// Location returns the business time zone used for "today" and month boundaries.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseTrialDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
