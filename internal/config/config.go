package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required"`

	Operator  OperatorConfig  `envPrefix:"OPERATOR_"`
	Admin     AdminConfig     `envPrefix:"ADMIN_"`
	Database  DatabaseConfig  `envPrefix:"DB_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	Reminders RemindersConfig `envPrefix:"REMINDER_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// OperatorConfig identifies the fixed recipient of completed orders.
type OperatorConfig struct {
	ChatID int64 `env:"CHAT_ID,required"`
}

type AdminConfig struct {
	IDs []int64 `env:"IDS" envSeparator:","`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST,required"`
	Port            int           `env:"PORT,required"`
	User            string        `env:"USER,required"`
	Password        string        `env:"PASSWORD,required"`
	Name            string        `env:"NAME,required"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

type RedisConfig struct {
	Addr     string        `env:"ADDR,required"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

// RemindersConfig holds the three fixed offsets at which an inactive user
// is nudged to finish the order.
type RemindersConfig struct {
	Short  time.Duration `env:"SHORT" envDefault:"30m"`
	Medium time.Duration `env:"MEDIUM" envDefault:"6h"`
	Long   time.Duration `env:"LONG" envDefault:"12h"`
}

type RateLimitConfig struct {
	Messages int64         `env:"MESSAGES" envDefault:"30"`
	Window   time.Duration `env:"WINDOW" envDefault:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Operator.ChatID == 0 {
		return nil, fmt.Errorf("operator chat ID is required")
	}

	return &cfg, nil
}
