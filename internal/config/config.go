// Package config loads the process-wide, immutable-after-start configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Binance BinanceConfig `mapstructure:"binance"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // console | json
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl"`
	// ExposeResetToken echoes reset tokens in API responses. Test mode only.
	ExposeResetToken bool `mapstructure:"expose_reset_token"`
}

type BinanceConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	APISecret        string        `mapstructure:"api_secret"`
	Timeout          time.Duration `mapstructure:"timeout"`
	PriceCacheTTL    time.Duration `mapstructure:"price_cache_ttl"`
	PriceConcurrency int           `mapstructure:"price_concurrency"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

var ErrMissingJWTSecret = errors.New("auth.jwt_secret must be set")

// defaults for every key so env-only deployments work without a config file.
var defaults = map[string]any{
	"port":                      "8002",
	"log.level":                 "info",
	"log.encoding":              "console",
	"db.path":                   "app.db",
	"auth.jwt_secret":           "",
	"auth.token_ttl":            30 * time.Minute,
	"auth.reset_token_ttl":      time.Hour,
	"auth.expose_reset_token":   false,
	"binance.base_url":          "https://api.binance.com",
	"binance.api_key":           "",
	"binance.api_secret":        "",
	"binance.timeout":           10 * time.Second,
	"binance.price_cache_ttl":   15 * time.Second,
	"binance.price_concurrency": 4,
	"sentry.dsn":                "",
	"sentry.environment":        "development",
}

// Load reads .env (if present), configs/config.yml from the given search paths
// and environment overrides such as BINANCE_API_KEY or AUTH_JWT_SECRET.
func Load(paths ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings the process cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.ResetTokenTTL <= 0 {
		return fmt.Errorf("auth.reset_token_ttl must be positive, got %s", c.Auth.ResetTokenTTL)
	}
	if c.Binance.PriceConcurrency <= 0 {
		c.Binance.PriceConcurrency = 1
	}
	return nil
}
