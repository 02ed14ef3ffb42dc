package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"3000" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Version  string `env:"APP_VERSION" envDefault:"1.0.0"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret         string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL            time.Duration `env:"JWT_TTL" envDefault:"24h" validate:"gt=0"`
	OTPTTL            time.Duration `env:"OTP_TTL" envDefault:"10m" validate:"gt=0"`
	OTPStore          string        `env:"OTP_STORE" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL          string        `env:"REDIS_URL" validate:"required_if=OTPStore redis"`
	AuthUniformErrors bool          `env:"AUTH_UNIFORM_ERRORS" envDefault:"false"`

	// EmailProvider defaults to log locally and smtp elsewhere.
	EmailProvider    string   `env:"EMAIL_PROVIDER" validate:"omitempty,oneof=log smtp resend mailersend"`
	SMTPHost         string   `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort         int      `env:"SMTP_PORT" envDefault:"587" validate:"min=1,max=65535"`
	EmailUser        string   `env:"EMAIL_USER" validate:"required_if=EmailProvider smtp"`
	EmailPass        string   `env:"EMAIL_PASS" validate:"required_if=EmailProvider smtp"`
	EmailFrom        string   `env:"EMAIL_FROM" validate:"omitempty,email"`
	Brand            string   `env:"EMAIL_FROM_NAME" envDefault:"Nextelligentia"`
	ResendAPIKey     string   `env:"RESEND_API_KEY" validate:"required_if=EmailProvider resend"`
	MailerSendAPIKey string   `env:"MAILERSEND_API_KEY" validate:"required_if=EmailProvider mailersend"`
	LeadRecipients   []string `env:"LEAD_NOTIFY_RECIPIENTS" envSeparator:"," validate:"dive,email"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	NATSURL            string   `env:"NATS_URL"`

	NotifyWorkers   int           `env:"NOTIFY_WORKERS" envDefault:"4" validate:"min=1,max=100"`
	NotifyQueueSize int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"100" validate:"min=1"`
	NotifyTimeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	StatsCron       string        `env:"STATS_CRON" envDefault:"@every 1m" validate:"required"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "smtp"
		if cfg.Env == "local" {
			cfg.EmailProvider = "log"
		}
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.EmailUser
	}
	for i, r := range cfg.LeadRecipients {
		cfg.LeadRecipients[i] = strings.TrimSpace(r)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.EmailProvider != "log" && cfg.EmailFrom == "" {
		return nil, fmt.Errorf("invalid config: EMAIL_FROM or EMAIL_USER is required for provider %s", cfg.EmailProvider)
	}
	if cfg.Env != "local" && len(cfg.LeadRecipients) == 0 {
		return nil, fmt.Errorf("invalid config: LEAD_NOTIFY_RECIPIENTS is required outside local")
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
