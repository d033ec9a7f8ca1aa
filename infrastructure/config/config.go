package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// Editor configuration
	FlowName string `yaml:"flow_name"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableCORS    bool `yaml:"enable_cors"`

	// ConfigFile is the optional YAML file the values were overlaid from
	ConfigFile string `yaml:"-"`
}

// fileConfig mirrors Config with pointer fields so a YAML file can
// override only the keys it sets
type fileConfig struct {
	ServerAddress *string `yaml:"server_address"`
	Environment   *string `yaml:"environment"`
	FlowName      *string `yaml:"flow_name"`
	LogLevel      *string `yaml:"log_level"`
	EnableMetrics *bool   `yaml:"enable_metrics"`
	EnableCORS    *bool   `yaml:"enable_cors"`
}

// LoadConfig loads configuration from environment variables, then overlays
// the optional YAML file named by CONFIG_FILE
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		FlowName:      getEnv("FLOW_NAME", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
		ConfigFile:    getEnv("CONFIG_FILE", ""),
	}

	if cfg.ConfigFile != "" {
		if err := cfg.applyFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Reload re-reads the YAML file, keeping env-derived values for keys the
// file does not set. Used by the config watcher.
func (c *Config) Reload() (*Config, error) {
	fresh, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// Validate checks if the configuration is coherent
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// applyFile overlays values from a YAML file
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.ServerAddress != nil {
		c.ServerAddress = *file.ServerAddress
	}
	if file.Environment != nil {
		c.Environment = *file.Environment
	}
	if file.FlowName != nil {
		c.FlowName = *file.FlowName
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
	}
	if file.EnableMetrics != nil {
		c.EnableMetrics = *file.EnableMetrics
	}
	if file.EnableCORS != nil {
		c.EnableCORS = *file.EnableCORS
	}

	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
