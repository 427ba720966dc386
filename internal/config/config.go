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
	Port     string
	LogLevel string
	DB       DBConfig
	Dataset  DatasetConfig
	Chart    ChartConfig
	Auth     AuthConfig
	Forecast ForecastConfig
	Server   ServerConfig
}

type DBConfig struct {
	Path string
}

type DatasetConfig struct {
	Path        string
	YearColumn  string
	PriceColumn string
}

type ChartConfig struct {
	Path string
}

type AuthConfig struct {
	SigningKey    string
	SessionTTL    time.Duration
	SecureCookies bool
}

type ForecastConfig struct {
	Trees int
}

type ServerConfig struct {
	WriteTimeout time.Duration
}

const insecureDevKey = "change-me-in-config"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("dataset.path", "data/AgriData.xlsx")
	v.SetDefault("dataset.year_column", "Year")
	v.SetDefault("dataset.price_column", "Price (₹/ton)")
	v.SetDefault("chart.path", "static/prediction_plot.png")
	v.SetDefault("auth.signing_key", insecureDevKey)
	v.SetDefault("auth.session_ttl", 24*time.Hour)
	v.SetDefault("auth.secure_cookies", false)
	v.SetDefault("forecast.trees", 100)
	v.SetDefault("server.write_timeout", 30*time.Second)
}

// Load reads an optional .env file, then configs/config.yml (also optional),
// then environment overrides such as DB_PATH or AUTH_SIGNING_KEY.
func Load(configDir string) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		DB:       DBConfig{Path: v.GetString("db.path")},
		Dataset: DatasetConfig{
			Path:        v.GetString("dataset.path"),
			YearColumn:  v.GetString("dataset.year_column"),
			PriceColumn: v.GetString("dataset.price_column"),
		},
		Chart: ChartConfig{Path: v.GetString("chart.path")},
		Auth: AuthConfig{
			SigningKey:    v.GetString("auth.signing_key"),
			SessionTTL:    v.GetDuration("auth.session_ttl"),
			SecureCookies: v.GetBool("auth.secure_cookies"),
		},
		Forecast: ForecastConfig{Trees: v.GetInt("forecast.trees")},
		Server:   ServerConfig{WriteTimeout: v.GetDuration("server.write_timeout")},
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errors.New("auth.signing_key must not be empty")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive, got %s", c.Auth.SessionTTL)
	}
	if c.Dataset.Path == "" {
		return errors.New("dataset.path must not be empty")
	}
	return nil
}

// UsesDevSigningKey reports whether the built-in development key is active.
func (c *Config) UsesDevSigningKey() bool {
	return c.Auth.SigningKey == insecureDevKey
}
