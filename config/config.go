package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Cache   CacheConfig
	Search  SearchConfig
}

// ServerConfig holds view-API server configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BackendConfig holds Che Súper API configuration
type BackendConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit int           `mapstructure:"ratelimit"` // requests per minute, 0 disables
}

// CacheConfig holds catalog-response cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SearchConfig holds catalog search tuning
type SearchConfig struct {
	Debounce                     time.Duration `mapstructure:"debounce"`
	DefaultLimit                 int           `mapstructure:"default_limit"`
	MinSupermercados             int           `mapstructure:"min_supermercados"`
	AvailabilityMinSupermercados int           `mapstructure:"availability_min_supermercados"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/chesuper/")

	v.SetEnvPrefix("CHESUPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "http://127.0.0.1:*"})

	v.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	v.SetDefault("backend.timeout", "30s")
	v.SetDefault("backend.ratelimit", 120)

	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("search.debounce", "400ms")
	v.SetDefault("search.default_limit", 24)
	v.SetDefault("search.min_supermercados", 1)
	v.SetDefault("search.availability_min_supermercados", 3)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required (set CHESUPER_BACKEND_BASE_URL)")
	}
	if u, err := url.Parse(config.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend base URL %q is not a valid URL", config.Backend.BaseURL)
	}

	if config.Search.Debounce <= 0 {
		return fmt.Errorf("search debounce must be positive, got: %s", config.Search.Debounce)
	}
	if config.Search.DefaultLimit < 1 {
		return fmt.Errorf("search default limit must be at least 1, got: %d", config.Search.DefaultLimit)
	}
	if config.Search.MinSupermercados < 1 || config.Search.AvailabilityMinSupermercados < 1 {
		return fmt.Errorf("min_supermercados values must be at least 1")
	}

	return nil
}
