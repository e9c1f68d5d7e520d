package auth

import (
	"context"
	"fmt"
	"time"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserLookup finds the stored user behind a set of credentials
type UserLookup interface {
	FindOne(ctx context.Context, filters map[string]interface{}) (*models.User, error)
}

// AuthService checks credentials and issues and validates tokens
type AuthService struct {
	config *AuthConfig
	users  UserLookup
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID   uuid.UUID   `json:"user_id" example:"8c3f1d52-2f5e-4d2b-9b1e-0b6f0d6b7a10"`
	Username string      `json:"username" example:"product_owner"`
	Role     models.Role `json:"role" example:"product-owner"`
	TeamID   uuid.UUID   `json:"team_id" example:"0a4b8d7e-51b2-4b8f-a1a3-7f0e6fbc1d22"`
	// Standard JWT fields
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// Caller returns the identity carried by the claims.
func (c *AuthClaims) Caller() *authz.Caller {
	return &authz.Caller{UserID: c.UserID, Name: c.Username, Role: c.Role, TeamID: c.TeamID}
}

// TokenResponse represents the response of the token endpoint
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type" example:"bearer"`
	ExpiresIn   int64         `json:"expires_in" example:"3600"`
	Identity    *authz.Caller `json:"identity"`
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig, users UserLookup) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	return &AuthService{config: config, users: users}, nil
}

// Authenticate checks a user name and password against the stored bcrypt hash.
// Unknown users and wrong passwords produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, name, password string) (*authz.Caller, error) {
	if name == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindOne(ctx, map[string]interface{}{"name": name})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &authz.Caller{UserID: user.ID, Name: user.Name, Role: user.Role, TeamID: user.TeamID}, nil
}

// GenerateJWT signs a token for caller valid for the configured TTL.
func (s *AuthService) GenerateJWT(caller *authz.Caller) (*TokenResponse, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:   caller.UserID,
		Username: caller.Name,
		Role:     caller.Role,
		TeamID:   caller.TeamID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   caller.UserID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.config.TokenTTL.Seconds()),
		Identity:    caller,
	}, nil
}

// ValidateJWT parses and verifies a token signed by GenerateJWT.
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		return nil, apperrors.NewAuthenticationError(fmt.Sprintf("invalid token: %v", err))
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}
