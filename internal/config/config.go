package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DogAPI  DogAPIConfig  `mapstructure:"dogapi"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

// DogAPIConfig holds Dog CEO API client configuration
type DogAPIConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxWorkers           int      `mapstructure:"max_workers"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	Proxies              []string `mapstructure:"proxies"`
	UserAgent            string   `mapstructure:"user_agent"`
}

// CatalogConfig holds catalog presentation settings
type CatalogConfig struct {
	SampleSize        int    `mapstructure:"sample_size"`
	Placeholder       string `mapstructure:"placeholder"`
	DetailPlaceholder string `mapstructure:"detail_placeholder"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads config.yaml from path (or the current directory when path is
// empty) with environment variable overrides. A missing file means defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("DOGBROWSER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the client cannot work with.
func (c *Config) Validate() error {
	if c.DogAPI.BaseURL == "" {
		return fmt.Errorf("dogapi.base_url must not be empty")
	}
	if c.DogAPI.MaxWorkers < 1 {
		return fmt.Errorf("dogapi.max_workers must be at least 1, got %d", c.DogAPI.MaxWorkers)
	}
	if c.DogAPI.MaxRetries < 0 {
		return fmt.Errorf("dogapi.max_retries must not be negative, got %d", c.DogAPI.MaxRetries)
	}
	if c.Catalog.SampleSize < 1 {
		return fmt.Errorf("catalog.sample_size must be at least 1, got %d", c.Catalog.SampleSize)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dogapi.base_url", "https://dog.ceo/api")
	v.SetDefault("dogapi.timeout", 30)
	v.SetDefault("dogapi.max_retries", 0)
	v.SetDefault("dogapi.max_workers", 8)
	v.SetDefault("dogapi.max_requests_per_second", 10)
	v.SetDefault("dogapi.proxies", []string{})
	v.SetDefault("dogapi.user_agent", "dogbrowser/1.0")

	v.SetDefault("catalog.sample_size", 3)
	v.SetDefault("catalog.placeholder", "https://via.placeholder.com/250")
	v.SetDefault("catalog.detail_placeholder", "https://via.placeholder.com/600")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "dogbrowser.log")
}
