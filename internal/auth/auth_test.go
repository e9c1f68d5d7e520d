package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*AuthService, *testutils.World) {
	t.Helper()
	db := testutils.NewSQLiteDB(t)
	world := testutils.SeedWorld(t, db)
	repos := repository.NewRepositories(db)

	svc, err := NewAuthService(&AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, repos.Users)
	require.NoError(t, err)
	return svc, world
}

func TestAuthConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := &AuthConfig{JWTSecret: "secret", TokenTTL: time.Minute}
		assert.NoError(t, config.ValidateConfig())
		assert.Equal(t, defaultIssuer, config.Issuer)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		err := (&AuthConfig{TokenTTL: time.Minute}).ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
		assert.True(t, apperrors.IsConfiguration(err))
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		err := (&AuthConfig{JWTSecret: "secret"}).ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "token TTL")
	})
}

func TestAuthenticate(t *testing.T) {
	svc, world := newTestService(t)
	ctx := context.Background()

	caller, err := svc.Authenticate(ctx, "product_owner", "product_owner")
	require.NoError(t, err)
	assert.Equal(t, world.PO.ID, caller.UserID)
	assert.Equal(t, models.RoleProductOwner, caller.Role)
	assert.Equal(t, world.POTeam.ID, caller.TeamID)

	for _, tc := range []struct{ name, user, password string }{
		{"wrong password", "product_owner", "nope"},
		{"unknown user", "ghost", "ghost"},
		{"empty password", "admin", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tc.user, tc.password)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc, world := newTestService(t)
	caller := world.Caller(world.User)

	token, err := svc.GenerateJWT(caller)
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.ValidateJWT(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, caller, claims.Caller())

	_, err = svc.ValidateJWT(token.AccessToken + "x")
	assert.True(t, apperrors.IsAuthentication(err))

	other, err := NewAuthService(&AuthConfig{JWTSecret: "other", TokenTTL: time.Hour}, nil)
	require.NoError(t, err)
	_, err = other.ValidateJWT(token.AccessToken)
	assert.True(t, apperrors.IsAuthentication(err))
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, world := newTestService(t)
	claims := &AuthClaims{
		UserID: world.Admin.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    defaultIssuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateJWT(signed)
	assert.True(t, apperrors.IsAuthentication(err))
}

func newTestRouter(svc *AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mw := NewAuthMiddleware(svc)
	h := NewAuthHandler(svc)

	router.POST("/api/auth/token", h.Token)
	protected := router.Group("/", mw.RequireAuth())
	protected.GET("/api/auth/validate", h.ValidateToken)
	protected.GET("/whoami", func(c *gin.Context) {
		fromGin, _ := GetCaller(c)
		fromCtx, _ := authz.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"gin": fromGin.Name, "ctx": fromCtx.Name})
	})
	return router
}

func TestMiddleware(t *testing.T) {
	svc, _ := newTestService(t)
	router := newTestRouter(svc)

	t.Run("basic credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.SetBasicAuth("user", "user")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"gin": "user", "ctx": "user"}`, rec.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(http.StatusUnauthorized), body["status_code"])
		assert.Equal(t, apperrors.ErrMissingCredentials.Message, body["message"])
	})

	t.Run("bad password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.SetBasicAuth("user", "wrong")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Digest abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTokenEndpoint(t *testing.T) {
	svc, world := newTestService(t)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	req.SetBasicAuth("admin", "admin")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var token TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, world.Admin.ID, token.Identity.UserID)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":true`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/token", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserStoreUnavailable(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	testutils.SeedWorld(t, db)
	svc, err := NewAuthService(&AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, repository.NewRepositories(db).Users)
	require.NoError(t, err)
	router := newTestRouter(svc)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	for path, method := range map[string]string{"/whoami": http.MethodGet, "/api/auth/token": http.MethodPost} {
		req := httptest.NewRequest(method, path, nil)
		req.SetBasicAuth("user", "user")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code, path)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(http.StatusInternalServerError), body["status_code"])
		assert.Equal(t, "internal server error", body["message"])
		assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
	}
}
