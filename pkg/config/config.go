package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Store      StoreConfig   `yaml:"store" mapstructure:"store"`
	Dictionary Dictionary    `yaml:"dictionary" mapstructure:"dictionary"`
	Logger     LoggerConfig  `yaml:"logger" mapstructure:"logger"`
	Metrics    MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// StoreConfig holds connection settings for the dictionary store
type StoreConfig struct {
	Endpoints       []string `yaml:"endpoints" mapstructure:"endpoints" validate:"required,min=1,dive,url"`
	Database        string   `yaml:"database" mapstructure:"database" validate:"required"`
	Username        string   `yaml:"username" mapstructure:"username"`
	Password        string   `yaml:"password" mapstructure:"password"`
	TermsCollection string   `yaml:"terms_collection" mapstructure:"terms_collection" validate:"required"`
	EdgesCollection string   `yaml:"edges_collection" mapstructure:"edges_collection" validate:"required"`
	SearchView      string   `yaml:"search_view" mapstructure:"search_view" validate:"required"`
}

// LoggerConfig holds logging settings
type LoggerConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error fatal"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json text console"`
}

// MetricsConfig holds metrics settings
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// Load loads configuration from environment variables and files using Viper
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dictionary")

	// Enable reading from environment variables
	v.SetEnvPrefix("DICT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough to run
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Dictionary.Validate()
}

func setDefaults(v *viper.Viper) {
	// Store
	v.SetDefault("store.endpoints", []string{"http://localhost:8529"})
	v.SetDefault("store.database", "dictionary")
	v.SetDefault("store.terms_collection", "terms")
	v.SetDefault("store.edges_collection", "edges")
	v.SetDefault("store.search_view", "terms_view")

	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	// Metrics
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "dictionary")

	setDictionaryDefaults(v)
}
