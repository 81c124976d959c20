package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	NotifierLog    = "log"
	NotifierOutbox = "outbox"
	NotifierKafka  = "kafka"
)

type Config struct {
	ServerPort int `env:"SERVER_PORT" envDefault:"8080"`

	// Empty DatabaseURL runs the service on in-memory stores.
	DatabaseURL   string `env:"DATABASE_URL"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Empty JWTSecretKey disables the admin guard.
	JWTSecretKey string `env:"JWT_SECRET_KEY"`

	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	BracketCacheSize   int      `env:"BRACKET_CACHE_SIZE" envDefault:"256"`

	Notifier     string `env:"NOTIFIER" envDefault:"log"`
	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"tournament.notifications"`

	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `env:"R2_PUBLIC_BASE_URL"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	switch c.Notifier {
	case NotifierLog:
	case NotifierOutbox:
		if c.DatabaseURL == "" {
			return errors.New("NOTIFIER=outbox requires DATABASE_URL")
		}
	case NotifierKafka:
		if strings.TrimSpace(c.KafkaBrokers) == "" {
			return errors.New("NOTIFIER=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown NOTIFIER %q (want log, outbox or kafka)", c.Notifier)
	}
	if c.R2Enabled() && !c.r2Complete() {
		return errors.New("R2 archive is partially configured: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// R2Enabled reports whether any archive setting is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" || c.R2AccessKeyID != "" || c.R2SecretAccessKey != "" || c.R2BucketName != "" || c.R2PublicBaseURL != ""
}

func (c *Config) r2Complete() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
