package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"tradetracker/internal/delivery/http/dto"
	"tradetracker/internal/domain"
	"tradetracker/internal/middleware"
)

// CredentialStore registers and verifies users
type CredentialStore interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(user *domain.User) (string, time.Time, error)
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	credentials  CredentialStore
	tokens       TokenIssuer
	secureCookie bool
	log          zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
// secureCookie marks the session cookie HTTPS-only.
func NewAuthHandler(credentials CredentialStore, tokens TokenIssuer, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		credentials:  credentials,
		tokens:       tokens,
		secureCookie: secureCookie,
		log:          log.With().Str("component", "auth_handler").Logger(),
	}
}

// Register creates an account and logs it in
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.log, err, "")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.credentials.Register(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err, "")
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token")
	}
	return CreatedResponse(c, resp)
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Identifier() == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.credentials.Verify(ctx, req.Identifier(), req.Password)
	if err != nil {
		return respondError(c, h.log, err, "")
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token")
	}
	return SuccessResponse(c, resp)
}

// Logout clears the session cookie. Issued tokens stay valid until they expire.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		MaxAge:   -1, // Delete cookie
	})

	return SuccessMessageResponse(c, "Logged out", nil)
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := middleware.GetUser(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}
	return SuccessResponse(c, dto.NewUserOutput(user))
}

func (h *AuthHandler) issueSession(c echo.Context, user *domain.User) (*dto.TokenResponse, error) {
	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to issue token")
		return nil, err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC(),
		User:        dto.NewUserOutput(user),
	}, nil
}
