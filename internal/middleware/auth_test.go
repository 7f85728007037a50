package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/vicriadty/cafe-app-ai/internal/model"
	"github.com/vicriadty/cafe-app-ai/pkg/config"
	"github.com/vicriadty/cafe-app-ai/pkg/jwtutil"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"
	"github.com/vicriadty/cafe-app-ai/prometheus"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		Server:  config.ServerConfig{Env: "test"},
		Log:     config.LogConfig{Level: "error"},
		Metrics: config.MetricsConfig{Prefix: "cafe_test"},
	}
	logger.InitLogger(cfg)
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwtutil.GenerateToken(&jwtutil.UserClaims{
		UserID: 1,
		Name:   "Joe Owner",
		Email:  "joe@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return token
}

func doRequest(authHeader string, handler echo.HandlerFunc, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wrapped := handler
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	_ = wrapped(c)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	ok := func(c echo.Context) error {
		identity, found := IdentityFromContext(c)
		if !found {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, identity)
	}

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest("", ok, AuthMiddleware)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := doRequest("Token abc", ok, AuthMiddleware)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest("Bearer not-a-jwt", ok, AuthMiddleware)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := jwtutil.GenerateToken(&jwtutil.UserClaims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		require.NoError(t, err)
		rec := doRequest("Bearer "+token, ok, AuthMiddleware)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		rec := doRequest("Bearer "+signToken(t, model.RoleOwner), ok, AuthMiddleware)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "joe@example.com")
	})
}

func TestRequireOwner(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("owner passes", func(t *testing.T) {
		rec := doRequest("Bearer "+signToken(t, model.RoleOwner), ok, AuthMiddleware, RequireOwner)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		rec := doRequest("Bearer "+signToken(t, "customer"), ok, AuthMiddleware, RequireOwner)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated context is rejected", func(t *testing.T) {
		rec := doRequest("", ok, RequireOwner)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
