package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds ndwalk configuration.
type Config struct {
	Name string `yaml:"name"`

	// Seed for the random number sections. Zero picks a time-based seed.
	Seed uint64 `yaml:"seed"`

	// OutputDir receives the files written by the saving and CSV sections.
	OutputDir string `yaml:"output_dir"`

	// Sections to run, by name. Empty runs every section.
	Sections []string `yaml:"sections"`

	Store   StoreConfig   `yaml:"store"`
	Text    TextConfig    `yaml:"text"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig configures array persistence.
type StoreConfig struct {
	Kind       string `yaml:"kind"`       // memory, local
	Compressor string `yaml:"compressor"` // none, gzip, zstd
	Chunks     []int  `yaml:"chunks"`
}

// TextConfig configures delimited text output.
type TextConfig struct {
	Delimiter string `yaml:"delimiter"`
	Format    string `yaml:"format"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json, console
}

var (
	ValidStoreKinds   = []string{"memory", "local"}
	ValidCompressors  = []string{"none", "gzip", "zstd"}
	ValidLogEncodings = []string{"json", "console"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:      "ndwalk",
		Seed:      42,
		OutputDir: "ndwalk-out",

		Store: StoreConfig{
			Kind:       "local",
			Compressor: "zstd",
		},

		Text: TextConfig{
			Delimiter: ",",
		},

		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if s := os.Getenv("NDWALK_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid NDWALK_SEED %q: %w", s, err)
		}
		c.Seed = seed
	}
	if dir := os.Getenv("NDWALK_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if lvl := os.Getenv("NDWALK_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidStoreKinds, c.Store.Kind) {
		return fmt.Errorf("invalid store kind: %s (valid: %v)", c.Store.Kind, ValidStoreKinds)
	}
	if c.Store.Compressor != "" && !contains(ValidCompressors, c.Store.Compressor) {
		return fmt.Errorf("invalid compressor: %s (valid: %v)", c.Store.Compressor, ValidCompressors)
	}
	for _, n := range c.Store.Chunks {
		if n < 1 {
			return fmt.Errorf("invalid chunk length: %d", n)
		}
	}
	if c.Store.Kind == "local" && c.OutputDir == "" {
		return fmt.Errorf("output_dir is required for a local store")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Logging.Encoding != "" && !contains(ValidLogEncodings, c.Logging.Encoding) {
		return fmt.Errorf("invalid log encoding: %s (valid: %v)", c.Logging.Encoding, ValidLogEncodings)
	}
	return nil
}

// ZapConfig returns the logger configuration. verbose forces debug level.
func (c *Config) ZapConfig(verbose bool) (zap.Config, error) {
	zc := zap.NewProductionConfig()
	if c.Logging.Encoding != "" {
		zc.Encoding = c.Logging.Encoding
	}
	if c.Logging.Encoding == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zc, fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
