package auth

import (
	"time"

	"dci-control-server/internal/config"
	apperrors "dci-control-server/internal/errors"
)

const defaultIssuer = "dci-control-server"

// AuthConfig holds the token settings of the authentication layer
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" json:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" json:"token_ttl"`
	Issuer    string        `yaml:"issuer" json:"issuer"`
}

// NewAuthConfig derives the authentication settings from the application configuration
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Issuer:    defaultIssuer,
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return apperrors.NewConfigurationError("JWT secret is required")
	}
	if c.TokenTTL <= 0 {
		return apperrors.NewConfigurationError("token TTL must be positive")
	}
	if c.Issuer == "" {
		c.Issuer = defaultIssuer
	}
	return nil
}
