package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. WIDGET_SERVER_PORT or WIDGET_AUTH_JWT_SECRET.
const EnvPrefix = "WIDGET"

// ConfigFileEnv names an explicit configuration file to read.
const ConfigFileEnv = "WIDGET_CONFIG_FILE"

// defaults lists every configuration key with its default value. Keys with a
// nil default are required and have no fallback.
var defaults = map[string]any{
	"server.port":                    8080,
	"server.log_level":               "info",
	"server.docs_base_url":           "https://localhost:8000/docs",
	"server.request_timeout_seconds": 30,
	"database.driver":                "postgres",
	"database.url":                   nil,
	"database.auto_migrate":          false,
	"auth.jwt_secret":                nil,
	"auth.token_lifetime_minutes":    60,
	"auth.bcrypt_cost":               10,
	"auth.token_rate_limit":          0.0,
	"auth.token_rate_burst":          5,
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		if value != nil {
			v.SetDefault(key, value)
		}
		// Binding explicitly makes env-only keys visible to Unmarshal.
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// readConfigFile reads WIDGET_CONFIG_FILE when set, otherwise an optional
// config.yaml from the working directory.
func readConfigFile(v *viper.Viper) error {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
