package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"tradetracker/internal/domain"
)

// respondError maps ledger and identity errors onto HTTP responses.
// notFoundMessage names the resource the caller asked for.
func respondError(c echo.Context, log zerolog.Logger, err error, notFoundMessage string) error {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return ValidationErrorResponse(c, validationErr.Field, validationErr.Error())
	case errors.Is(err, domain.ErrValidation):
		return ValidationErrorResponse(c, "", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return NotFoundResponse(c, notFoundMessage)
	case errors.Is(err, domain.ErrConflict):
		return ConflictResponse(c, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return UnauthorizedResponse(c, "Incorrect email or password")
	case errors.Is(err, domain.ErrUnauthenticated):
		return UnauthorizedResponse(c, "Invalid or expired token")
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("Request failed")
	return InternalServerErrorResponse(c, "Internal server error")
}

// NewHTTPErrorHandler renders errors escaping handlers and middleware
// (bind failures, auth rejections, unknown routes, panics) in the
// standard response envelope
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			message := http.StatusText(httpErr.Code)
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
			if httpErr.Code >= http.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
			}
			_ = ErrorResponse(c, httpErr.Code, message, nil)
			return
		}

		_ = respondError(c, log, err, "Not found")
	}
}
