package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	custommiddleware "tradetracker/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler    *AuthHandler
	TradeHandler   *TradeHandler
	DepositHandler *DepositHandler
	HealthHandler  *HealthHandler
	Guard          custommiddleware.Authenticator

	CORSAllowOrigins []string
	AuthRateLimit    float64 // requests per second per client, 0 disables
	Logger           zerolog.Logger
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(config.Logger)

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for health probes to reduce noise
			path := c.Request().URL.Path
			return path == "/health" || path == "/api/health"
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := config.Logger.Info()
			if v.Error != nil || v.Status >= 500 {
				event = config.Logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.CORSAllowOrigins,
		AllowCredentials: !allowsAnyOrigin(config.CORSAllowOrigins),
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	e.GET("/", config.HealthHandler.Root)

	// Health check
	e.GET("/health", config.HealthHandler.Health)

	// API group
	api := e.Group("/api")
	api.GET("/health", config.HealthHandler.Health)

	// Auth routes (public, rate limited)
	auth := api.Group("/auth")
	if config.AuthRateLimit > 0 {
		auth.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(config.AuthRateLimit),
				Burst:     max(1, int(config.AuthRateLimit*2)),
				ExpiresIn: 3 * time.Minute,
			},
		)))
	}
	requireAuth := custommiddleware.AuthMiddleware(config.Guard)
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.GET("/me", config.AuthHandler.Me, requireAuth)
	}

	// Trade routes (protected with AuthMiddleware)
	trades := api.Group("/trades", requireAuth)
	{
		trades.GET("", config.TradeHandler.List)
		trades.POST("", config.TradeHandler.Create)
		trades.GET("/:id", config.TradeHandler.Get)
		trades.PUT("/:id", config.TradeHandler.Update)
		trades.PATCH("/:id", config.TradeHandler.Update)
		trades.DELETE("/:id", config.TradeHandler.Delete)
	}

	deposits := api.Group("/deposits", requireAuth)
	{
		deposits.GET("", config.DepositHandler.List)
		deposits.POST("", config.DepositHandler.Create)
		deposits.DELETE("/:id", config.DepositHandler.Delete)
	}
}

func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
