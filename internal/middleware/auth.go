package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tradetracker/internal/domain"
)

// TokenCookieName is the cookie that carries the session token for browsers
const TokenCookieName = "token"

const userContextKey = "user"

// Authenticator resolves a bearer token to a user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// ExtractToken reads the bearer token from the Authorization header,
// falling back to the token cookie
func ExtractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		cookie, err := c.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			return "", errors.New("missing authentication token")
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid authorization header format")
	}

	return strings.TrimSpace(parts[1]), nil
}

// AuthMiddleware rejects requests without a valid token and stores the
// authenticated user in the echo context
func AuthMiddleware(guard Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := ExtractToken(c)
			if err != nil {
				return unauthorized(c, err.Error())
			}

			user, err := guard.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return unauthorized(c, "Invalid or expired token")
				}
				return fmt.Errorf("failed to authenticate request: %w", err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// GetUser extracts the authenticated user from echo context
func GetUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(userContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetUserID extracts the authenticated user ID from echo context
func GetUserID(c echo.Context) (uuid.UUID, error) {
	user, err := GetUser(c)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func unauthorized(c echo.Context, message string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, message)
}
