package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Telegram struct {
		BotToken string `env:"BOT_TOKEN,required"`
		APIURL   string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`

		// Mode selects how updates arrive: "polling" (default) or "webhook".
		Mode          string `env:"TELEGRAM_MODE" envDefault:"polling"`
		HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
		WebhookURL    string `env:"WEBHOOK_URL" envDefault:""`
		WebhookSecret string `env:"WEBHOOK_SECRET" envDefault:""`

		PollTimeoutSec int `env:"POLL_TIMEOUT_SEC" envDefault:"30"`
	}

	OpenAI struct {
		APIKey  string `env:"OPENAI_API_KEY,required"`
		BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
		Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	}

	SQLite struct {
		Path string `env:"SQLITE_PATH" envDefault:"calories.db"`
	}

	Redis struct {
		// Empty addr keeps pending meals in process memory instead.
		Addr     string `env:"REDIS_ADDR" envDefault:""`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
		// TTL for unconfirmed estimates; 0 keeps them until overwritten
		// or confirmed.
		PendingTTL time.Duration `env:"PENDING_TTL" envDefault:"24h"`
	}
}

func Load() (*Config, error) {
	// Missing .env is fine; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
