package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/pkg/jwt"
)

// Echo context keys set by EchoAuth
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextActor  = "actor"
)

// TokenValidator parses bearer tokens into claims
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer token and sets
// "user_id" (string), "role" (entities.UserRole) and "actor" (entities.Actor)
// into the Echo context.
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			role := entities.UserRole(claims.Role)
			if !role.IsValid() {
				return echo.NewHTTPError(http.StatusForbidden, "Unknown role")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, role)
			c.Set(ContextActor, entities.Actor{ID: claims.UserID, Role: role})

			return next(c)
		}
	}
}

// RequireRole rejects requests whose authenticated role is not in roles
func RequireRole(roles ...entities.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// ActorFromContext returns the authenticated caller set by EchoAuth
func ActorFromContext(c echo.Context) (entities.Actor, bool) {
	actor, ok := c.Get(ContextActor).(entities.Actor)
	return actor, ok && actor.ID != ""
}

// ExtractToken reads the token from the Authorization header, falling back
// to the access_token cookie and then the access_token query parameter
// (browsers cannot set headers on websocket upgrades).
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return r.URL.Query().Get("access_token")
}
