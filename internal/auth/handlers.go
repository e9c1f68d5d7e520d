package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Token handles POST /api/auth/token
// @Summary Exchange credentials for a token
// @Description Exchange HTTP basic credentials for a signed bearer token
// @Tags authentication
// @Produce json
// @Success 201 {object} TokenResponse "Token issued"
// @Failure 401 {object} map[string]interface{} "Missing or invalid credentials"
// @Failure 500 {object} map[string]interface{} "User store unavailable"
// @Security BasicAuth
// @Router /api/auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	name, password, ok := c.Request.BasicAuth()
	if !ok {
		abortAuthError(c, errBasicRequired)
		return
	}

	caller, err := h.service.Authenticate(c.Request.Context(), name, password)
	if err != nil {
		abortAuthError(c, err)
		return
	}

	token, err := h.service.GenerateJWT(caller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status_code": http.StatusInternalServerError,
			"message":     "could not issue token",
			"payload":     gin.H{},
		})
		return
	}

	c.JSON(http.StatusCreated, token)
}

// ValidateToken handles GET /api/auth/validate
// @Summary Validate the presented credentials
// @Description Return the identity behind a bearer token or basic credentials
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]interface{} "Credentials are valid"
// @Failure 401 {object} map[string]interface{} "Credentials are missing or invalid"
// @Security BearerAuth
// @Router /api/auth/validate [get]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	caller, ok := GetCaller(c)
	if !ok {
		abortAuthError(c, errBasicRequired)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "identity": caller})
}
