package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Payment   PaymentConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Database  DatabaseConfig
	Stats     StatsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	// TrustProxy makes X-Forwarded-For / X-Real-IP authoritative for the
	// client address. Only enable behind a proxy that overwrites them.
	TrustProxy bool
	// UserHeader is set by the upstream auth proxy with the caller's user id.
	UserHeader string
}

// RateLimitConfig holds the payment attempt limiter settings
type RateLimitConfig struct {
	Window        time.Duration
	MaxAttempts   int
	SweepChance   float64
	SweepInterval time.Duration // 0 disables the periodic sweeper
}

// AuditConfig holds transaction audit persistence settings
type AuditConfig struct {
	PersistEnabled bool
	Workers        int
	QueueSize      int
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// StatsConfig holds Redis settings for payment attempt statistics
type StatsConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
	TTL           time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; values
// already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			TrustProxy:     getBoolEnv("TRUST_PROXY", false),
			UserHeader:     getEnv("TRUSTED_USER_HEADER", "X-User-ID"),
		},
		Payment: PaymentConfig{
			Webpay: WebpayConfig{
				CommerceCode: getEnv(EnvWebpayCommerceCode, ""),
				APIKey:       getEnv(EnvWebpayAPIKey, ""),
				Environment:  getEnv(EnvWebpayEnvironment, ""),
			},
			Khipu: KhipuConfig{
				ReceiverID:  getEnv(EnvKhipuReceiverID, ""),
				Secret:      getEnv(EnvKhipuSecret, ""),
				Environment: getEnv(EnvKhipuEnvironment, ""),
			},
			MercadoPago: MercadoPagoConfig{
				AccessToken: getEnv(EnvMercadoPagoAccessToken, ""),
				PublicKey:   getEnv(EnvMercadoPagoPublicKey, ""),
				Environment: getEnv(EnvMercadoPagoEnvironment, ""),
			},
		},
		RateLimit: RateLimitConfig{
			Window:        getDurationEnv("PAYMENT_RATE_WINDOW", 15*time.Minute),
			MaxAttempts:   getIntEnv("PAYMENT_RATE_MAX_ATTEMPTS", 5),
			SweepChance:   getFloatEnv("PAYMENT_RATE_SWEEP_CHANCE", 0.01),
			SweepInterval: getDurationEnv("PAYMENT_RATE_SWEEP_INTERVAL", 0),
		},
		Audit: AuditConfig{
			PersistEnabled: getBoolEnv("AUDIT_DB_ENABLED", false),
			Workers:        getIntEnv("AUDIT_WORKERS", 2),
			QueueSize:      getIntEnv("AUDIT_QUEUE_SIZE", 256),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "cuentasclaras"),
			Database:  getEnv("DB_DATABASE", "payments"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Stats: StatsConfig{
			Enabled:       getBoolEnv("RATE_STATS_ENABLED", false),
			RedisAddr:     getEnv("RATE_STATS_REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("RATE_STATS_REDIS_PASSWORD", ""),
			RedisDB:       getIntEnv("RATE_STATS_REDIS_DB", 0),
			Prefix:        getEnv("RATE_STATS_PREFIX", "payment_attempts"),
			TTL:           getDurationEnv("RATE_STATS_TTL", 24*time.Hour),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
//
// Missing payment gateway credentials are not an error here: they are
// reported per request by the payment guard so the rest of the API keeps
// serving.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if c.Server.UserHeader == "" {
		errs = append(errs, errors.New("TRUSTED_USER_HEADER is required"))
	}

	// Rate limit validation
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("PAYMENT_RATE_WINDOW must be positive"))
	}
	if c.RateLimit.MaxAttempts <= 0 {
		errs = append(errs, errors.New("PAYMENT_RATE_MAX_ATTEMPTS must be positive"))
	}
	if c.RateLimit.SweepChance < 0 || c.RateLimit.SweepChance > 1 {
		errs = append(errs, fmt.Errorf("PAYMENT_RATE_SWEEP_CHANCE must be between 0 and 1, got %v", c.RateLimit.SweepChance))
	}
	if c.RateLimit.SweepInterval < 0 {
		errs = append(errs, errors.New("PAYMENT_RATE_SWEEP_INTERVAL cannot be negative"))
	}

	// Audit persistence validation
	if c.Audit.PersistEnabled {
		if c.Audit.Workers <= 0 {
			errs = append(errs, errors.New("AUDIT_WORKERS must be positive when AUDIT_DB_ENABLED is true"))
		}
		if c.Audit.QueueSize <= 0 {
			errs = append(errs, errors.New("AUDIT_QUEUE_SIZE must be positive when AUDIT_DB_ENABLED is true"))
		}
		if err := c.Database.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("audit database: %w", err))
		}
	}

	// Stats validation
	if c.Stats.Enabled {
		if c.Stats.RedisAddr == "" {
			errs = append(errs, errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED is true"))
		}
		if c.Stats.RedisDB < 0 {
			errs = append(errs, errors.New("RATE_STATS_REDIS_DB cannot be negative"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks that all required database fields are present
func (d DatabaseConfig) Validate() error {
	var missing []string
	if d.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if d.Port == "" {
		missing = append(missing, "DB_PORT")
	}
	if d.Namespace == "" {
		missing = append(missing, "DB_NAMESPACE")
	}
	if d.Database == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
