package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration, loaded once at process start.
type Config struct {
	Env          string        `envconfig:"CRESTLINE_ENV" default:"development"`
	Addr         string        `envconfig:"CRESTLINE_ADDR" default:":8080"`
	GRPCAddr     string        `envconfig:"CRESTLINE_GRPC_ADDR" default:""`
	ReadTimeout  time.Duration `envconfig:"CRESTLINE_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"CRESTLINE_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"CRESTLINE_IDLE_TIMEOUT" default:"60s"`

	JWTSecret string        `envconfig:"CRESTLINE_JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"CRESTLINE_TOKEN_TTL" default:"24h"`

	FrontendURL string `envconfig:"CRESTLINE_FRONTEND_URL" default:"http://localhost:3000"`

	PGDSN     string `envconfig:"CRESTLINE_PG_DSN" default:""`
	RedisAddr string `envconfig:"CRESTLINE_REDIS_ADDR" default:""`

	RateLimitMax    int           `envconfig:"CRESTLINE_RATE_LIMIT_MAX" default:"20"`
	RateLimitWindow time.Duration `envconfig:"CRESTLINE_RATE_LIMIT_WINDOW" default:"1m"`

	LogFormat string `envconfig:"CRESTLINE_LOG_FORMAT" default:"json"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, errors.New("rate limit max and window must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the service runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.Env == "production"
}
