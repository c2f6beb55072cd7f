package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"https://charm-money.vercel.app"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"Charm"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ShareTokenSecret     string `env:"SHARE_TOKEN_SECRET"`
	ShareTokenTTLMinutes int    `env:"SHARE_TOKEN_TTL_MINUTES" envDefault:"1440"`

	SubmitRateLimit         int `env:"SUBMIT_RATE_LIMIT" envDefault:"5"`
	SubmitRateWindowSeconds int `env:"SUBMIT_RATE_WINDOW_SECONDS" envDefault:"600"`
	ResultCacheTTLMinutes   int `env:"RESULT_CACHE_TTL_MINUTES" envDefault:"60"`
	CodeMaxRetries          int `env:"CODE_MAX_RETRIES" envDefault:"5"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ShareTokenTTL() time.Duration {
	return time.Duration(c.ShareTokenTTLMinutes) * time.Minute
}

func (c *Config) SubmitRateWindow() time.Duration {
	return time.Duration(c.SubmitRateWindowSeconds) * time.Second
}

func (c *Config) ResultCacheTTL() time.Duration {
	return time.Duration(c.ResultCacheTTLMinutes) * time.Minute
}
