package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config keeps runtime settings for the service. Provider API keys are
// optional; each one that is set enables its provider in the chain.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"wordbank.db"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
	StaleWindow     time.Duration `env:"STALE_WINDOW" envDefault:"24h"`
	CacheCapacity   int64         `env:"CACHE_CAPACITY" envDefault:"1000"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"6h"`

	TelegramToken       string `env:"TELEGRAM_TOKEN"`
	TelegramAdminChatID int64  `env:"TELEGRAM_ADMIN_CHAT_ID"`
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CacheCapacity <= 0 {
		return cfg, fmt.Errorf("CACHE_CAPACITY must be positive")
	}
	if cfg.StaleWindow <= 0 {
		return cfg, fmt.Errorf("STALE_WINDOW must be positive")
	}
	return cfg, nil
}
