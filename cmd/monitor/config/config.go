package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	// TokenPlaceholder is bot token value shipped in example environment.
	TokenPlaceholder = "YOUR_BOT_TOKEN_HERE"
	// ChatIDPlaceholder is chat ID value shipped in example environment.
	ChatIDPlaceholder = "YOUR_CHAT_ID_HERE"
)

// ErrMissingCredentials is returned when Telegram credentials are not configured.
var ErrMissingCredentials = errors.New("telegram credentials not configured")

// Config holds application configuration.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Telegram Telegram
	Catalog  Catalog

	SnapshotPath  string        `env:"SNAPSHOT_PATH" envDefault:"./product-data.json"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	CheckInterval time.Duration `env:"CHECK_INTERVAL" envDefault:"60s"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	StockTimeout  time.Duration `env:"STOCK_TIMEOUT" envDefault:"10s"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"10"`

	RabbitMQ RabbitMQ
}

// Telegram holds Telegram bot configuration.
type Telegram struct {
	Token  string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID string `env:"TELEGRAM_CHAT_ID"`
}

// Catalog holds monitored catalog configuration.
type Catalog struct {
	BaseURL      string `env:"CATALOG_BASE_URL" envDefault:"https://www.sheinindia.in"`
	Category     string `env:"CATALOG_CATEGORY" envDefault:"sverse-5939-37961"`
	Label        string `env:"CATALOG_LABEL" envDefault:"SHEINVERSE"`
	DefaultBrand string `env:"DEFAULT_BRAND" envDefault:"Shein"`
}

// RabbitMQ holds RabbitMQ configuration. Empty URL disables commands and events.
type RabbitMQ struct {
	URL              string `env:"RABBITMQ_URL"`
	Exchange         string `env:"RABBITMQ_EXCHANGE" envDefault:"csm-ex"`
	Queue            string `env:"RABBITMQ_QUEUE" envDefault:"catalog-stock-monitor.commands"`
	CommandsKey      string `env:"RABBITMQ_COMMANDS_ROUTING_KEY" envDefault:"catalog-stock-monitor.check"`
	EventsRoutingKey string `env:"RABBITMQ_EVENTS_ROUTING_KEY" envDefault:"catalog-stock-monitor.products-added"`
}

// Load loads optional .env file from working directory and parses environment into Config.
func Load(filenames ...string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(filenames...); err != nil && len(filenames) > 0 {
		return cfg, fmt.Errorf("can't load env file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("can't parse env variables: %w", err)
	}

	return cfg, nil
}

// Validate checks that Telegram credentials are set and not left at placeholders.
func (c Config) Validate() error {
	var missing []string
	if c.Telegram.Token == "" || c.Telegram.Token == TokenPlaceholder {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.ChatID == "" || c.Telegram.ChatID == ChatIDPlaceholder {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingCredentials, missing)
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("invalid BATCH_SIZE: %d", c.BatchSize)
	}

	return nil
}
