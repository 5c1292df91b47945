package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds the runtime settings of the service.
type Config struct {
	AppPort      string
	APIKey       string
	APIKeyHeader string
	StoreDriver  string
	SQLiteDSN    string
	RabbitMQURL  string
	SeedProducts bool
}

// Load reads configuration from an optional config file in the working
// directory and from environment variables, which take precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("API_KEY", "secret-api-key")
	v.SetDefault("API_KEY_HEADER", "X-API-Key")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("SQLITE_DSN", "file::memory:?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SEED_PRODUCTS", true)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AutomaticEnv() // Load environment variables

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		AppPort:      v.GetString("APP_PORT"),
		APIKey:       v.GetString("API_KEY"),
		APIKeyHeader: v.GetString("API_KEY_HEADER"),
		StoreDriver:  v.GetString("STORE_DRIVER"),
		SQLiteDSN:    v.GetString("SQLITE_DSN"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		SeedProducts: v.GetBool("SEED_PRODUCTS"),
	}

	if cfg.StoreDriver != StoreMemory && cfg.StoreDriver != StoreSQLite {
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.APIKey == "" || cfg.APIKeyHeader == "" {
		return nil, fmt.Errorf("API_KEY and API_KEY_HEADER must not be empty")
	}
	return cfg, nil
}
