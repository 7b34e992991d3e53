package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"tradetracker/configs"
	delivery "tradetracker/internal/delivery/http"
	"tradetracker/internal/infra"
	"tradetracker/internal/logger"
	"tradetracker/internal/seed"
	"tradetracker/internal/service"
)

func main() {
	seedOnly := flag.Bool("seed", false, "create the demo user and exit")
	flag.Parse()

	// Load environment variables
	envErr := godotenv.Load()

	// Load configuration
	cfg := configs.Load()

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger.SetGlobalLogger(log)

	if envErr != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if err := run(cfg, log, *seedOnly); err != nil {
		log.Fatal().Err(err).Msg("Application stopped")
	}
}

func run(cfg *configs.Config, log zerolog.Logger, seedOnly bool) error {
	// Initialize context
	ctx := context.Background()

	// Initialize database
	store, err := infra.OpenStore(ctx, cfg.Database.URL, infra.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	// Initialize services
	credentials := service.NewCredentialService(store.Users, cfg.Auth.BcryptCost, log)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	guard := service.NewAccessGuard(tokens, store.Users)
	ledger := service.NewLedgerService(store.Trades, store.Deposits, log)

	if seedOnly || cfg.Seed.DemoData {
		seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		_, err := seed.NewSeeder(credentials, ledger, log).Run(seedCtx)
		cancel()
		if err != nil {
			return err
		}
		if seedOnly {
			return nil
		}
	}

	// Database health monitor
	monitor := infra.NewHealthMonitor(store, cfg.Database.HealthCheckSchedule, log)
	if err := monitor.Start(); err != nil {
		return fmt.Errorf("failed to start health monitor: %w", err)
	}
	defer monitor.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:      delivery.NewAuthHandler(credentials, tokens, !cfg.IsDevelopment(), log),
		TradeHandler:     delivery.NewTradeHandler(ledger, log),
		DepositHandler:   delivery.NewDepositHandler(ledger, log),
		HealthHandler:    delivery.NewHealthHandler(store, "trade-tracker-api", log),
		Guard:            guard,
		CORSAllowOrigins: cfg.Server.CORSAllowOrigins,
		AuthRateLimit:    cfg.Server.AuthRateLimit,
		Logger:           log,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	// Run server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("env", cfg.Server.Env).
			Str("driver", store.Driver).
			Msg("Trade Tracker API starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
