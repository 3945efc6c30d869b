package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config is read from KANSO_* environment variables, after an optional .env file.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	Port        string      `envconfig:"PORT" default:"8080"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string      `envconfig:"LOG_FORMAT" default:"json"`

	DBUser     string `envconfig:"DB_USER" default:"kanso_user"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"secret"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"kanso_db"`

	// Redis is optional; an empty host disables cache, rate limiting and pub/sub.
	RedisHost     string `envconfig:"REDIS_HOST" default:""`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer     string        `envconfig:"JWT_ISSUER" default:"kanso-habits"`
	TokenDuration time.Duration `envconfig:"TOKEN_DURATION" default:"72h"`

	FederatedIssuer string `envconfig:"FEDERATED_ISSUER" default:""`
	FederatedSecret string `envconfig:"FEDERATED_SECRET" default:""`

	// A zero limit or window turns rate limiting off.
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitPrefix   string        `envconfig:"RATE_LIMIT_PREFIX" default:"kanso:rate_limit"`

	NotificationQueueSize int `envconfig:"NOTIFICATION_QUEUE_SIZE" default:"100"`
}

// Load reads envFile (ignored when missing) and then the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	var cfg Config
	if err := envconfig.Process("KANSO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	switch cfg.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return nil, fmt.Errorf("unsupported KANSO_ENVIRONMENT: %s", cfg.Environment)
	}

	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) FederatedEnabled() bool {
	return c.FederatedIssuer != "" && c.FederatedSecret != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) HTTPAddr() string {
	return ":" + c.Port
}
