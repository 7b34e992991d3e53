package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// DatabasePinger reports database reachability
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness information
type HealthHandler struct {
	db      DatabasePinger
	service string
	log     zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DatabasePinger, service string, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		service: service,
		log:     log.With().Str("component", "health_handler").Logger(),
	}
}

// Root is the API banner
// GET /
func (h *HealthHandler) Root(c echo.Context) error {
	return SuccessResponse(c, map[string]interface{}{
		"message": "Welcome to Trade Tracker API",
	})
}

// Health pings the database
// GET /health, GET /api/health
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	data := map[string]interface{}{
		"status":    "healthy",
		"service":   h.service,
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Health check failed")
		data["status"] = "unhealthy"
		data["database"] = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, Response{
			Status: "error",
			Data:   data,
		})
	}

	return SuccessResponse(c, data)
}
