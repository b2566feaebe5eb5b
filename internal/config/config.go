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

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`               // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`                 // Telegram API token loaded from environment
	QuizzesJSONPath  string `mapstructure:"quizzes_json_path"` // path to JSON file with quiz topics and questions
	Bot              Bot    `mapstructure:"bot"`               // bot polling configuration section
	DB               DB     `mapstructure:"database"`          // database configuration section
}

// Bot contains Telegram polling parameters.
type Bot struct {
	Debug         bool `mapstructure:"debug"`          // log raw Telegram API traffic
	UpdateTimeout int  `mapstructure:"update_timeout"` // long polling timeout in seconds
	Workers       int  `mapstructure:"workers"`        // number of updates handled concurrently
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether a database is configured. Without one the bot keeps
// users and results in memory.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom is Load with an explicit directory to look for config.yaml in.
func LoadFrom(configDir string) (*Config, error) {
	// Values from .env never override variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetDefault("env", "local")
	v.SetDefault("quizzes_json_path", "assets/data/quizzes.json")
	v.SetDefault("bot.debug", false)
	v.SetDefault("bot.update_timeout", 60)
	v.SetDefault("bot.workers", 8)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("quizzes_json_path", "QUIZZES_JSON_PATH")

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

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")

	if cfg.Bot.Workers < 1 {
		cfg.Bot.Workers = 1
	}

	return &cfg, nil
}
