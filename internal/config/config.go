// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"streetsmart"`
	Env         string `env:"ENV"          envDefault:"dev"`
	HTTPAddr    string `env:"HTTP_ADDR"    envDefault:":8080"`
	GRPCAddr    string `env:"GRPC_ADDR"`
	LogFile     string `env:"LOG_FILE"`

	StoreDriver    string `env:"STORE_DRIVER"     envDefault:"memory"`
	SQLitePath     string `env:"SQLITE_PATH"      envDefault:"streetsmart.db"`
	RedisAddr      string `env:"REDIS_ADDR"       envDefault:"localhost:6379"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"streetsmart:"`
	MySQLDSN       string `env:"MYSQL_DSN"`

	PaymentProcessingDelay time.Duration `env:"PAYMENT_PROCESSING_DELAY" envDefault:"2s"`
	PaymentResetDelay      time.Duration `env:"PAYMENT_RESET_DELAY"      envDefault:"5s"`
	PaymentSuccessRate     float64       `env:"PAYMENT_SUCCESS_RATE"     envDefault:"0.9"`

	SeedSampleData bool   `env:"SEED_SAMPLE_DATA" envDefault:"true"`
	VoiceEnabled   bool   `env:"VOICE_ENABLED"    envDefault:"true"`
	Locale         string `env:"LOCALE"           envDefault:"en-IN"`
	Timezone       string `env:"TIMEZONE"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

var validDrivers = map[string]bool{"memory": true, "sqlite": true, "redis": true, "mysql": true}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, errors.New("HTTP_ADDR is required"))
	}
	if !validDrivers[c.StoreDriver] {
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of memory, sqlite, redis, mysql", c.StoreDriver))
	}
	if c.StoreDriver == "mysql" && strings.TrimSpace(c.MySQLDSN) == "" {
		errs = append(errs, errors.New("MYSQL_DSN is required for the mysql store"))
	}
	if c.PaymentProcessingDelay <= 0 || c.PaymentResetDelay <= 0 {
		errs = append(errs, errors.New("payment delays must be positive"))
	}
	if c.PaymentSuccessRate <= 0 || c.PaymentSuccessRate > 1 {
		errs = append(errs, fmt.Errorf("PAYMENT_SUCCESS_RATE %v must be in (0, 1]", c.PaymentSuccessRate))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves TIMEZONE; empty means the host's local zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}
