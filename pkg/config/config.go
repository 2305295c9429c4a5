package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the pipeline
type Config struct {
	// Season is the NBA season string, e.g. "2025-26"
	Season string `yaml:"season"`

	// API settings for the stats service
	API APIConfig `yaml:"api"`

	// Output settings
	Output OutputConfig `yaml:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds stats-service call settings
type APIConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	Retries           int           `yaml:"retries"`
	BaseDelay         time.Duration `yaml:"base_delay"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
	CallDelay         time.Duration `yaml:"call_delay"`
	SectionDelay      time.Duration `yaml:"section_delay"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with the pipeline's defaults
func DefaultConfig() *Config {
	return &Config{
		Season: "2025-26",
		API: APIConfig{
			Timeout:           120 * time.Second,
			Retries:           5,
			BaseDelay:         3 * time.Second,
			BackoffMultiplier: 2.0,
			CallDelay:         1500 * time.Millisecond,
			SectionDelay:      3 * time.Second,
		},
		Output: OutputConfig{
			DataDir: "./data",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file, overriding defaults
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// LoadFromEnv loads overrides from the environment. A .env file in the
// working directory is applied first when present.
func (c *Config) LoadFromEnv() {
	_ = godotenv.Load()

	if season := os.Getenv("NBA_SEASON"); season != "" {
		c.Season = season
	}
	if dir := os.Getenv("NBAFETCH_DATA_DIR"); dir != "" {
		c.Output.DataDir = dir
	}
	if level := os.Getenv("NBAFETCH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

var seasonPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Validate checks the configuration before any external call is made
func (c *Config) Validate() error {
	var errs []error

	if !seasonPattern.MatchString(c.Season) {
		errs = append(errs, fmt.Errorf("season %q must look like 2025-26", c.Season))
	}
	if c.API.Retries < 1 {
		errs = append(errs, errors.New("api.retries must be at least 1"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.BackoffMultiplier < 1 {
		errs = append(errs, errors.New("api.backoff_multiplier must be at least 1"))
	}
	if c.API.BaseDelay < 0 || c.API.CallDelay < 0 || c.API.SectionDelay < 0 {
		errs = append(errs, errors.New("api delays must not be negative"))
	}
	if c.Output.DataDir == "" {
		errs = append(errs, errors.New("output.data_dir must be set"))
	}

	return errors.Join(errs...)
}

// Load builds the effective configuration: defaults, then the optional YAML
// file, then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	cfg.LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
