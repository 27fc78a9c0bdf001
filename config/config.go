// Package config holds the settings of the meval HTTP service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Values come from the defaults,
// then an optional YAML file, then the environment.
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Strict is the default for requests that do not set it.
	Strict bool `yaml:"strict"`
	// MaxExpressionLength bounds the size of an expression in bytes.
	MaxExpressionLength int           `yaml:"maxExpressionLength"`
	ReadTimeout         time.Duration `yaml:"readTimeout"`
	WriteTimeout        time.Duration `yaml:"writeTimeout"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Host:                "0.0.0.0",
		Port:                8787,
		MaxExpressionLength: 4096,
		ReadTimeout:         10 * time.Second,
		WriteTimeout:        10 * time.Second,
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the values are usable.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxExpressionLength <= 0 {
		return fmt.Errorf("maxExpressionLength must be positive, got %d", c.MaxExpressionLength)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	return nil
}

// Parse reads a YAML document over the defaults. Keys absent from the
// document keep their default value.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Load reads the YAML file at path, if path is not empty, and applies
// the MEVAL_HOST, MEVAL_PORT and MEVAL_STRICT environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg.Host = envOrDefault("MEVAL_HOST", cfg.Host)
	if v := os.Getenv("MEVAL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("MEVAL_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("MEVAL_STRICT"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("MEVAL_STRICT: %w", err)
		}
		cfg.Strict = strict
	}
	return cfg, cfg.Validate()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
