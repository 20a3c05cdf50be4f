package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`   // Telegram API token loaded from environment
	Bot              Bot    `mapstructure:"bot"`
	Game             Game   `mapstructure:"game"`
	DB               DB     `mapstructure:"database"`
	Redis            Redis  `mapstructure:"redis"`
}

// Bot contains Telegram client options.
type Bot struct {
	Debug bool `mapstructure:"debug"` // log raw Telegram API traffic
}

// Game contains quiz rules and session housekeeping parameters.
type Game struct {
	TotalRounds     int           `mapstructure:"total_rounds"`     // rounds in one game
	RevealDelay     time.Duration `mapstructure:"reveal_delay"`     // pause between a tap and the result message
	IdleTTL         time.Duration `mapstructure:"idle_ttl"`         // idle games older than this are dropped
	SweepSchedule   string        `mapstructure:"sweep_schedule"`   // cron spec for the idle sweeper
	LeaderboardSize int           `mapstructure:"leaderboard_size"` // rows shown by /top
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether results should be persisted in PostgreSQL.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Redis contains leaderboard cache parameters.
type Redis struct {
	URL            string        `mapstructure:"-"`               // redis connection string loaded from environment
	LeaderboardTTL time.Duration `mapstructure:"leaderboard_ttl"` // how long a cached leaderboard is served
}

// Enabled reports whether leaderboards should be cached in Redis.
func (r Redis) Enabled() bool {
	return r.URL != ""
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	return load("./config")
}

func load(configPath string) (*Config, error) {
	// Local .env is optional; real environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetDefault("env", "local")
	v.SetDefault("bot.debug", false)
	v.SetDefault("game.total_rounds", 8)
	v.SetDefault("game.reveal_delay", "600ms")
	v.SetDefault("game.idle_ttl", "24h")
	v.SetDefault("game.sweep_schedule", "0 * * * *")
	v.SetDefault("game.leaderboard_size", 10)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.leaderboard_ttl", "1m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Sensitive values come from the environment only.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.URL = v.GetString("redis_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Game.TotalRounds < 1 {
		return fmt.Errorf("%w: game.total_rounds must be positive", ErrInvalidConfig)
	}
	if c.Game.RevealDelay < 0 {
		return fmt.Errorf("%w: game.reveal_delay must not be negative", ErrInvalidConfig)
	}
	if c.Game.IdleTTL <= 0 {
		return fmt.Errorf("%w: game.idle_ttl must be positive", ErrInvalidConfig)
	}
	if c.Game.LeaderboardSize < 1 {
		return fmt.Errorf("%w: game.leaderboard_size must be positive", ErrInvalidConfig)
	}
	if c.Redis.LeaderboardTTL <= 0 {
		return fmt.Errorf("%w: redis.leaderboard_ttl must be positive", ErrInvalidConfig)
	}
	return nil
}
