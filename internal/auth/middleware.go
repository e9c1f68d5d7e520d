package auth

import (
	"net/http"
	"strings"

	"dci-control-server/internal/authz"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/logger"

	"github.com/gin-gonic/gin"
)

// CallerKey is the gin context key holding the authenticated *authz.Caller.
const CallerKey = "caller"

var errBasicRequired = apperrors.NewAuthenticationError("basic credentials are required")

// AuthMiddleware authenticates requests with HTTP basic credentials or a bearer token
type AuthMiddleware struct {
	service *AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service *AuthService) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth resolves the caller of the request and stores it in both the
// gin context and the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := m.authenticate(c)
		if err != nil {
			abortAuthError(c, err)
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*authz.Caller, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	scheme, credentials, _ := strings.Cut(header, " ")
	switch strings.ToLower(scheme) {
	case "basic":
		name, password, ok := c.Request.BasicAuth()
		if !ok {
			return nil, apperrors.ErrInvalidCredentials
		}
		return m.service.Authenticate(c.Request.Context(), name, password)
	case "bearer":
		claims, err := m.service.ValidateJWT(strings.TrimSpace(credentials))
		if err != nil {
			return nil, err
		}
		return claims.Caller(), nil
	}
	return nil, apperrors.NewAuthenticationError("unsupported authorization scheme")
}

// SetCaller attaches caller to the request.
func SetCaller(c *gin.Context, caller *authz.Caller) {
	c.Set(CallerKey, caller)
	ctx := authz.NewContext(c.Request.Context(), caller)
	ctx = logger.ContextWithUser(ctx, caller.Name)
	c.Request = c.Request.WithContext(ctx)
}

// GetCaller is a helper function to extract the authenticated caller from context
func GetCaller(c *gin.Context) (*authz.Caller, bool) {
	value, exists := c.Get(CallerKey)
	if !exists {
		return nil, false
	}
	caller, ok := value.(*authz.Caller)
	return caller, ok && caller != nil
}

// abortAuthError answers 401 for rejected credentials and 500 when the
// credentials could not be checked at all.
func abortAuthError(c *gin.Context, err error) {
	if !apperrors.IsAuthentication(err) {
		logger.FromGinContext(c).WithError(err).Error("could not authenticate request")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status_code": http.StatusInternalServerError,
			"message":     "internal server error",
			"payload":     gin.H{},
		})
		return
	}

	logger.FromGinContext(c).WithError(err).Info("authentication failed")
	c.Header("WWW-Authenticate", `Basic realm="dci"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status_code": http.StatusUnauthorized,
		"message":     err.Error(),
		"payload":     gin.H{},
	})
}
