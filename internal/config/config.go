// Package config loads server settings from an optional config file, the
// environment and a .env file in the working directory.
package config

import (
	"log/slog"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/Zachkp/portfolio-builder/internal/share"
)

type Config struct {
	Port            string        `mapstructure:"port"`
	GinMode         string        `mapstructure:"gin_mode"`
	LogLevel        string        `mapstructure:"log_level"`
	BaseURL         string        `mapstructure:"base_url"`
	Seed            string        `mapstructure:"seed"`
	DefaultTemplate string        `mapstructure:"default_template"`
	ImportDelay     time.Duration `mapstructure:"import_delay"`

	AnalyticsDSN       string        `mapstructure:"analytics_dsn"`
	AnalyticsRetention time.Duration `mapstructure:"analytics_retention"`

	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port"`
	SMTPUser string `mapstructure:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("seed", "sample")
	v.SetDefault("default_template", "classic")
	v.SetDefault("import_delay", time.Second)
	v.SetDefault("analytics_dsn", "")
	v.SetDefault("analytics_retention", 365*24*time.Hour)
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
}

// Load reads configPath if given, then lets environment variables (PORT,
// SMTP_USER, ...) override it.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) SMTP() share.SMTPConfig {
	return share.SMTPConfig{Host: c.SMTPHost, Port: c.SMTPPort, User: c.SMTPUser, Pass: c.SMTPPass}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
