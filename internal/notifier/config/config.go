package config

import (
	"time"

	"golang-stock-notifier/pkg/config"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"

	TransportLog      = "log"
	TransportTelegram = "telegram"
	TransportWebhook  = "webhook"
)

// Storage selects the backing store for each collection.
type Storage struct {
	Alerts  string `mapstructure:"alerts"`
	Devices string `mapstructure:"devices"`
}

// Dispatcher holds fan-out settings.
type Dispatcher struct {
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
}

// Push holds notification transport configuration.
type Push struct {
	Transport           string        `mapstructure:"transport"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	WebhookURL          string        `mapstructure:"webhook_url"`
	WebhookTimeout      time.Duration `mapstructure:"webhook_timeout"`
}

// Telegram holds configuration for the Telegram transport.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
}

// MarketData holds the configuration for the quote source.
type MarketData struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheDuration       time.Duration `mapstructure:"cache_duration"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
}

// Monitor holds the periodic evaluation sweep configuration.
type Monitor struct {
	Enabled        bool          `mapstructure:"enabled"`
	CronExpression string        `mapstructure:"cron_expression"`
	SweepTimeout   time.Duration `mapstructure:"sweep_timeout"`
	// AllowManualPrice lets evaluate requests supply current_price instead of
	// using the live quote.
	AllowManualPrice bool `mapstructure:"allow_manual_price"`
}

// Config holds the full configuration for the notification service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	API        config.API      `mapstructure:"api"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	Storage    Storage         `mapstructure:"storage"`
	Dispatcher Dispatcher      `mapstructure:"dispatcher"`
	Push       Push            `mapstructure:"push"`
	Telegram   Telegram        `mapstructure:"telegram"`
	MarketData MarketData      `mapstructure:"market_data"`
	Monitor    Monitor         `mapstructure:"monitor"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "stock-notifier")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 30)
	v.SetDefault("api.port", 8080)
	v.SetDefault("redis.key_prefix", "stock-notifier")
	v.SetDefault("storage.alerts", StorageMemory)
	v.SetDefault("storage.devices", StorageMemory)
	v.SetDefault("dispatcher.delivery_timeout", 5*time.Second)
	v.SetDefault("dispatcher.max_concurrency", 32)
	v.SetDefault("push.transport", TransportLog)
	v.SetDefault("push.max_request_per_minute", 0)
	v.SetDefault("push.webhook_timeout", 10*time.Second)
	v.SetDefault("market_data.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("market_data.max_request_per_minute", 60)
	v.SetDefault("market_data.cache_duration", 15*time.Second)
	v.SetDefault("market_data.request_timeout", 10*time.Second)
	v.SetDefault("monitor.enabled", false)
	v.SetDefault("monitor.cron_expression", "@every 1m")
	v.SetDefault("monitor.sweep_timeout", 45*time.Second)
	v.SetDefault("monitor.allow_manual_price", false)
}

// Load loads the notification service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.LoadWithDefaults(path, &cfg, setDefaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
