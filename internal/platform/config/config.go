package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"

	"sunflower/pkg/platform/sentinel"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Store    Store
	PlantAPI PlantAPI
	Refresh  Refresh
	Redis    RedisConfig
	Kafka    Kafka
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string `env:"SUNFLOWER_ADDR" envDefault:":8080"`
	LogLevel  string `env:"SUNFLOWER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SUNFLOWER_LOG_FORMAT" envDefault:"json"`
}

// Store selects the local plant persistence.
type Store struct {
	Driver string `env:"SUNFLOWER_STORE_DRIVER" envDefault:"memory"`
	DSN    string `env:"SUNFLOWER_STORE_DSN"`
}

// PlantAPI configures the remote plant catalogue client.
type PlantAPI struct {
	BaseURL     string        `env:"SUNFLOWER_PLANT_API_URL" envDefault:"http://localhost:8081/"`
	HTTPTimeout time.Duration `env:"SUNFLOWER_PLANT_API_TIMEOUT" envDefault:"10s"`
	Attempts    uint          `env:"SUNFLOWER_PLANT_API_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay  time.Duration `env:"SUNFLOWER_PLANT_API_RETRY_DELAY" envDefault:"200ms"`
	// BreakerThreshold failed requests in a row suspend retries.
	BreakerThreshold int `env:"SUNFLOWER_PLANT_API_BREAKER_THRESHOLD" envDefault:"5"`
}

// Refresh configures plant refreshes. A zero Timeout disables the bound.
type Refresh struct {
	Timeout time.Duration `env:"SUNFLOWER_REFRESH_TIMEOUT" envDefault:"0s"`
}

// RedisConfig holds Redis connection settings. An empty URL disables the
// shared sort order cache.
type RedisConfig struct {
	URL          string        `env:"SUNFLOWER_REDIS_URL"`
	PoolSize     int           `env:"SUNFLOWER_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"SUNFLOWER_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"SUNFLOWER_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"SUNFLOWER_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"SUNFLOWER_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	SortOrderTTL time.Duration `env:"SUNFLOWER_SORT_ORDER_TTL" envDefault:"1h"`
}

// Kafka configures refresh event publishing. No brokers disables it.
type Kafka struct {
	Brokers []string `env:"SUNFLOWER_KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"SUNFLOWER_KAFKA_TOPIC" envDefault:"sunflower.refresh-events"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv builds and validates a Config from environment variables so main
// stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the process cannot start with.
func (c Config) Validate() error {
	if !slices.Contains([]string{DriverMemory, DriverSQLite, DriverPostgres}, c.Store.Driver) {
		return fmt.Errorf("unknown store driver %q: %w", c.Store.Driver, sentinel.ErrInvalidInput)
	}
	if c.Store.Driver != DriverMemory && c.Store.DSN == "" {
		return fmt.Errorf("store driver %s requires SUNFLOWER_STORE_DSN: %w", c.Store.Driver, sentinel.ErrInvalidInput)
	}
	if c.PlantAPI.BaseURL == "" {
		return fmt.Errorf("plant API URL is required: %w", sentinel.ErrInvalidInput)
	}
	if c.PlantAPI.Attempts == 0 {
		return fmt.Errorf("retry attempts must be at least 1: %w", sentinel.ErrInvalidInput)
	}
	if c.Refresh.Timeout < 0 {
		return fmt.Errorf("refresh timeout must not be negative: %w", sentinel.ErrInvalidInput)
	}
	return nil
}
