package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings read from the environment
type Config struct {
	AppHost     string
	AppPort     string
	FrontendURL string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// Empty disables the permission guard on mutating routes.
	JWTSecret string

	RateLimitRPS   float64
	RateLimitBurst int

	LogDir     string
	RequestLog bool
}

// Load reads .env (if present) and then the process environment
func Load() (*Config, error) {
	// a missing .env is fine, the variables may come from the environment
	_ = godotenv.Load()

	cfg := &Config{
		AppHost:     os.Getenv("APP_HOST"),
		AppPort:     getEnv("APP_PORT", "8000"),
		FrontendURL: getEnv("FRONTEND_URL", "*"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      os.Getenv("DB_DATABASE"),
		DBUser:      os.Getenv("DB_USERNAME"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogDir:      getEnv("LOG_DIR", "log/app"),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	if cfg.RequestLog, err = strconv.ParseBool(getEnv("REQUEST_LOG", "false")); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_LOG: %w", err)
	}

	if cfg.DBName == "" || cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_DATABASE and DB_USERNAME must be set")
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// ListenAddr is the host:port the HTTP server binds to
func (c *Config) ListenAddr() string {
	return c.AppHost + ":" + c.AppPort
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
