package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment after the
// optional .env file has been loaded.
type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	Environment      string        `env:"GO_ENV" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SeedSampleData   bool          `env:"SEED_SAMPLE_DATA" envDefault:"true"`
	IssueCreateLimit int           `env:"ISSUE_CREATE_LIMIT" envDefault:"20"`
	NotifyWait       time.Duration `env:"NOTIFY_WAIT" envDefault:"15s"`

	Redis RedisConfig
	Relay RelayConfig
	Mail  MailConfig
}

// RedisConfig configures the optional rate limiter backend. An empty
// address disables rate limiting.
type RedisConfig struct {
	Address     string `env:"REDIS_ADDRESS"`
	Password    string `env:"REDIS_PASSWORD"`
	QueuePrefix string `env:"REDIS_QUEUE_FOR_ISSUE_LIMIT" envDefault:"issue-limit"`
}

// RelayConfig tells the notifier where the mail relay lives and how to
// authenticate against it. The relay endpoint verifies with the same secret.
type RelayConfig struct {
	URL     string        `env:"RELAY_URL" envDefault:"http://localhost:8080/send-email"`
	Secret  string        `env:"RELAY_SECRET"`
	Timeout time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`
}

// MailConfig configures the SMTP side of the relay.
type MailConfig struct {
	Host           string `env:"SMTP_HOST"`
	Port           int    `env:"SMTP_PORT" envDefault:"587"`
	Username       string `env:"SMTP_USERNAME"`
	Password       string `env:"SMTP_PASSWORD"`
	From           string `env:"MAIL_FROM"`
	To             string `env:"MAIL_TO"`
	AllowRecipient bool   `env:"MAIL_ALLOW_RECIPIENT" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}
	if cfg.Mail.To == "" {
		cfg.Mail.To = cfg.Mail.From
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs with GO_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
