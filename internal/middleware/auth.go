package middleware

import (
	"net/http"
	"strings"

	"github.com/vicriadty/cafe-app-ai/internal/model"
	"github.com/vicriadty/cafe-app-ai/pkg/jwtutil"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"
	"github.com/vicriadty/cafe-app-ai/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityContextKey = "identity"

// AuthMiddleware validates the JWT token and stores the caller's identity in
// the request context. Protected routes mount this; owner routes add
// RequireOwner on top.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)
		prometheus.AuthAttemptsCounter.Inc()

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		identity := model.Identity{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		}
		c.Set(identityContextKey, identity)

		log.Info("Request authenticated",
			zap.Uint("user_id", identity.ID),
			zap.String("role", identity.Role))

		return next(c)
	}
}

// RequireOwner rejects callers whose role is not OWNER. Must be mounted
// after AuthMiddleware.
func RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		identity, ok := IdentityFromContext(c)
		if !ok {
			log.Error("RequireOwner used without authenticated identity")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		if !identity.IsOwner() {
			log.Warn("Non-owner attempted owner operation",
				zap.Uint("user_id", identity.ID),
				zap.String("role", identity.Role))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "owner role required"})
		}

		return next(c)
	}
}

// IdentityFromContext retrieves the authenticated identity set by
// AuthMiddleware. Returns false on public routes.
func IdentityFromContext(c echo.Context) (model.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(model.Identity)
	return identity, ok
}
