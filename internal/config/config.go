package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "dci-control-server/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Migration modes accepted by DB_MIGRATION_MODE.
const (
	MigrationAuto = "auto"
	MigrationSQL  = "sql"
	MigrationNone = "none"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`
	MigrationMode    string `mapstructure:"DB_MIGRATION_MODE"`

	// Token configuration
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Per-caller rate limiting; zero RPS disables it
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`

	// Seed document applied by dcictl seed
	SeedFile string `mapstructure:"SEED_FILE"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	// A missing .env is fine; real deployments inject the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set default values
	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// ALLOWED_ORIGINS from the environment arrives as a comma separated string
	config.AllowedOrigins = splitList(strings.Join(config.AllowedOrigins, ","))

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "dci")
	v.SetDefault("DB_PASSWORD", "dci")
	v.SetDefault("DB_NAME", "dci")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MIGRATION_MODE", MigrationAuto)

	// Token defaults
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("TOKEN_TTL", time.Hour)

	// CORS defaults
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8000"})

	v.SetDefault("RATE_LIMIT_RPS", 50.0)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SEED_FILE", "")
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
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

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == defaultJWTSecret {
			return apperrors.NewConfigurationError("JWT_SECRET must be set in production")
		}
	}

	if config.DatabaseName == "" && config.DatabaseURL == "" {
		return apperrors.NewConfigurationError("database name is required")
	}

	switch config.MigrationMode {
	case MigrationAuto, MigrationSQL, MigrationNone:
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("DB_MIGRATION_MODE must be one of %s, %s, %s", MigrationAuto, MigrationSQL, MigrationNone))
	}

	if config.TokenTTL <= 0 {
		return apperrors.NewConfigurationError("TOKEN_TTL must be positive")
	}

	if config.RateLimitRPS < 0 || config.RateLimitBurst < 0 {
		return apperrors.NewConfigurationError("rate limit settings must not be negative")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
