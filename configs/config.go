package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	Seed     SeedConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port             string
	Env              string
	CORSAllowOrigins []string
	AuthRateLimit    float64 // requests per second per client on /api/auth
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL                 string
	HealthCheckSchedule string
	MaxConns            int32
	MinConns            int32
	MaxConnLifetime     time.Duration
	MaxConnIdleTime     time.Duration
}

// AuthConfig holds token and password hashing configuration
type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
	BcryptCost     int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// SeedConfig controls demo data creation at startup
type SeedConfig struct {
	DemoData bool
}

const (
	envDevelopment = "development"

	defaultJWTSecret = "default-secret-change-in-production"
)

// Load loads configuration from environment variables
func Load() *Config {
	env := getEnv("GO_ENV", envDevelopment)
	isDev := env == envDevelopment

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" && isDev {
		dbURL = "sqlite:trade_tracker.db"
	}

	return &Config{
		Server: ServerConfig{
			Port:             getEnv("PORT", "8080"),
			Env:              env,
			CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
			AuthRateLimit:    getEnvFloat("AUTH_RATE_LIMIT", 5),
		},
		Database: DatabaseConfig{
			URL:                 dbURL,
			HealthCheckSchedule: getEnv("HEALTH_CHECK_SCHEDULE", "*/30 * * * * *"),
			MaxConns:            int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:            int32(getEnvInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime:     getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime:     getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			AccessTokenTTL: getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
			BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", isDev),
		},
		Seed: SeedConfig{
			DemoData: getEnvBool("SEED_DEMO_DATA", false),
		},
	}
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == envDevelopment
}

// Validate fills development fallbacks and rejects unsafe production settings
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("JWT_SECRET is required when GO_ENV=%s", c.Server.Env)
		}
		c.Auth.JWTSecret = defaultJWTSecret // Fallback for development
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
