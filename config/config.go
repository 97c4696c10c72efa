package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	App struct {
		Env         string
		Port        string
		FrontendURL string
		LogLevel    string
	}
	DB struct {
		Driver   string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		Path     string
	}
	JWT struct {
		Secret      string
		ExpiryHours int
	}
	Redis struct {
		URL        string
		SessionTTL time.Duration
	}
	Scoring struct {
		BallsPerOver int
	}
	Overlay struct {
		PollInterval time.Duration
	}
	RateLimit struct {
		AuthPerMinute int
		AuthBurst     int
	}
	Club *Club
}

const defaultJWTSecret = "change-me-in-production"

// Load reads configuration from the environment, a .env file if present, and
// the optional club YAML file named by CLUB_CONFIG_PATH.
func Load(log zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.DB.Driver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "clubhouse")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.DB.Path = getEnv("DB_PATH", "clubhouse.db")

	cfg.JWT.Secret = getEnv("JWT_SECRET", defaultJWTSecret)
	cfg.Redis.URL = getEnv("REDIS_URL", "")

	var err error
	if cfg.JWT.ExpiryHours, err = getEnvAsInt("JWT_EXPIRY_HOURS", 168); err != nil {
		return nil, err
	}
	if cfg.Redis.SessionTTL, err = getEnvAsDuration("SCHEDULE_SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Scoring.BallsPerOver, err = getEnvAsInt("BALLS_PER_OVER", 6); err != nil {
		return nil, err
	}
	if cfg.Overlay.PollInterval, err = getEnvAsDuration("OVERLAY_POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimit.AuthPerMinute, err = getEnvAsInt("AUTH_RATE_PER_MINUTE", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimit.AuthBurst, err = getEnvAsInt("AUTH_RATE_BURST", 5); err != nil {
		return nil, err
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	cfg.Club, err = LoadClub(getEnv("CLUB_CONFIG_PATH", ""))
	if err != nil {
		return nil, err
	}
	if cfg.Club.BallsPerOver > 0 {
		cfg.Scoring.BallsPerOver = cfg.Club.BallsPerOver
	}

	if cfg.JWT.Secret == defaultJWTSecret {
		log.Warn().Msg("using default JWT secret, set JWT_SECRET for production")
	}
	if cfg.DB.Password == "password" && cfg.IsProduction() {
		log.Warn().Msg("using default DB password in production, set DB_PASSWORD")
	}

	log.Info().
		Str("env", cfg.App.Env).
		Str("port", cfg.App.Port).
		Str("db_driver", cfg.DB.Driver).
		Bool("redis_sessions", cfg.Redis.URL != "").
		Str("club", cfg.Club.Name).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected duration, got '%s'", key, valueStr)
	}
	return value, nil
}
