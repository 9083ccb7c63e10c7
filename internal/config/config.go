package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is read once at start and never
// written back.
type Config struct {
	NewsAPI NewsAPIConfig `mapstructure:"newsapi"`
	Log     LogConfig     `mapstructure:"log"`
}

// NewsAPIConfig holds the upstream service settings.
type NewsAPIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Country string        `mapstructure:"country"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds log destination settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// HasAPIKey reports whether a NewsAPI key was supplied.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.NewsAPI.APIKey) != ""
}

// Load reads configuration from .env, the config file and env. Env var
// overrides use prefix NEWSSCREEN_; the bare API_KEY variable is honoured too.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	v := viper.New()

	// default values
	v.SetDefault("newsapi.api_key", "")
	v.SetDefault("newsapi.base_url", "https://newsapi.org")
	v.SetDefault("newsapi.country", "us")
	v.SetDefault("newsapi.timeout", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.Getenv("HOME"), ".local", "state", "newsscreen", "newsscreen.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("NEWSSCREEN_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "newsscreen"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NEWSSCREEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("newsapi.api_key", "NEWSSCREEN_NEWSAPI_API_KEY", "API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit NEWSSCREEN_CONFIG must exist; the default location is optional
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.NewsAPI.APIKey = strings.TrimSpace(c.NewsAPI.APIKey)
	return c, nil
}

// loadDotEnv populates the environment from NEWSSCREEN_ENV_FILE or ./.env.
// Variables already set in the environment win.
func loadDotEnv() error {
	path := os.Getenv("NEWSSCREEN_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
