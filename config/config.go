package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Sync      SyncConfig
	Store     StoreConfig
	Standards StandardsConfig
	Weight    WeightConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// APIConfig holds upstream pet-care API configuration
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AuthToken string        `mapstructure:"auth_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SyncConfig holds the polling intervals for the sync scheduler
type SyncConfig struct {
	NormalInterval time.Duration `mapstructure:"normal_interval"`
	FastInterval   time.Duration `mapstructure:"fast_interval"`
	FastWindow     time.Duration `mapstructure:"fast_window"`
}

// StoreConfig holds the on-disk key-value store configuration
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// StandardsConfig holds the nutritional standards cache configuration
type StandardsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// WeightConfig holds weight tracking configuration
type WeightConfig struct {
	RecordedByUserID string `mapstructure:"recorded_by_user_id"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pawtrack/")

	// Environment variable settings
	v.SetEnvPrefix("PAWTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"capacitor://*", "ionic://*", "http://localhost:*"})

	// Upstream API defaults. The empty auth token default registers the key
	// so the env var is picked up during Unmarshal.
	v.SetDefault("api.base_url", "https://api.pawtrack.app")
	v.SetDefault("api.auth_token", "")
	v.SetDefault("api.timeout", "30s")

	// Sync scheduler defaults
	v.SetDefault("sync.normal_interval", "30s")
	v.SetDefault("sync.fast_interval", "10s")
	v.SetDefault("sync.fast_window", "300s")

	// Store defaults
	v.SetDefault("store.path", "./data")

	// Standards cache defaults
	v.SetDefault("standards.cache_ttl", "6h")

	// Weight tracking defaults
	v.SetDefault("weight.recorded_by_user_id", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.API.BaseURL == "" {
		return fmt.Errorf("upstream API base URL is required (set PAWTRACK_API_BASE_URL)")
	}

	if config.Sync.NormalInterval <= 0 || config.Sync.FastInterval <= 0 {
		return fmt.Errorf("sync intervals must be positive, got normal=%s fast=%s",
			config.Sync.NormalInterval, config.Sync.FastInterval)
	}

	if config.Sync.FastInterval > config.Sync.NormalInterval {
		return fmt.Errorf("fast interval must not exceed the normal interval, got normal=%s fast=%s",
			config.Sync.NormalInterval, config.Sync.FastInterval)
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store path is required (set PAWTRACK_STORE_PATH)")
	}

	return nil
}
