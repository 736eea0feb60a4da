package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	SafeMem      float64       `mapstructure:"safe_mem"`
	Output       string        `mapstructure:"output"`
	LogicalCores bool          `mapstructure:"logical_cores"`
	ReserveCores int           `mapstructure:"reserve_cores"`
	Logging      LoggingConfig `mapstructure:"logging"`

	// Curves declares additional workflow runtime tables, keyed by workflow
	// name and then by thread count. Thread counts arrive as strings from
	// YAML; ParseCurves converts and validates them.
	Curves map[string]map[string]float64 `mapstructure:"curves"`
}

// ErrInvalidCurveKey indicates a curve thread-count key that is not a
// positive integer.
var ErrInvalidCurveKey = errors.New("invalid curve thread count")

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/mriplan/config.yaml
//   - $HOME/.config/mriplan/config.yaml
//
// Environment variables are prefixed with MRIPLAN_ (e.g. MRIPLAN_SAFE_MEM).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "mriplan"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "mriplan"))

	v.SetEnvPrefix("MRIPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("safe_mem", DefaultSafeMemFraction)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("logical_cores", false)
	v.SetDefault("reserve_cores", 0)
	v.SetDefault("logging.level", DefaultLogLevel)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ParseCurves converts the config file's string-keyed curve tables into the
// integer-keyed form the curve store expects.
func (c *Config) ParseCurves() (map[string]map[int]float64, error) {
	if len(c.Curves) == 0 {
		return nil, nil
	}

	tables := make(map[string]map[int]float64, len(c.Curves))
	for workflow, raw := range c.Curves {
		table := make(map[int]float64, len(raw))
		for key, minutes := range raw {
			threads, err := strconv.Atoi(key)
			if err != nil || threads < 1 {
				return nil, fmt.Errorf("%w: workflow %q key %q", ErrInvalidCurveKey, workflow, key)
			}
			table[threads] = minutes
		}
		tables[workflow] = table
	}
	return tables, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "mriplan"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "mriplan"), nil
}

// StateDir returns $XDG_STATE_HOME/mriplan/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "mriplan")
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		// Config file exists, do nothing
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# mriplan configuration

# Fraction of total RAM available for jobs (OS headroom excluded)
safe_mem: %.1f

# Default report format: pretty, plain, json, yaml
output: %s

# Count logical cores (hyperthreads) instead of physical cores
logical_cores: false

# Cores held back from planning
reserve_cores: 0

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: %s

# Additional workflow runtime curves (minutes per subject, measured at the
# reference CPU frequency). Thread counts are the keys.
#
# curves:
#   fmriprep:
#     "1": 240.0
#     "4": 95.0
#     "8": 72.5
`, DefaultSafeMemFraction, DefaultOutput, DefaultLogLevel)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}
