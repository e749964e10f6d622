// Package config loads and validates renderwave configuration.
//
// Configuration is resolved in layers, later layers winning:
//  1. built-in defaults (matching the browser list component's defaults)
//  2. the global file (~/.renderwave/config.yaml or $RENDERWAVE_CONFIG)
//  3. a project overlay (./.renderwave/config.yaml), merged per top-level key
//  4. RENDERWAVE_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default list geometry.
const (
	DefaultItemHeight      = 45
	DefaultContainerHeight = 400
	DefaultBatchSize       = 20
	DefaultIntervalMS      = 60
	DefaultOverscan        = 5
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfigPath   = "RENDERWAVE_CONFIG"
	EnvItemHeight   = "RENDERWAVE_ITEM_HEIGHT"
	EnvBatchSize    = "RENDERWAVE_BATCH_SIZE"
	EnvOutputFormat = "RENDERWAVE_OUTPUT_FORMAT"
	EnvLogLevel     = "RENDERWAVE_LOG_LEVEL"
	EnvLogFormat    = "RENDERWAVE_LOG_FORMAT"
)

const (
	configDirName  = ".renderwave"
	configFileName = "config.yaml"
)

// Validation errors.
var (
	ErrInvalidItemHeight      = errors.New("list.item_height must be > 0")
	ErrInvalidBatchSize       = errors.New("list.batch_size must be > 0")
	ErrInvalidContainerHeight = errors.New("list.container_height must be > 0")
	ErrInvalidOverscan        = errors.New("list.overscan must be >= 0")
	ErrInvalidInterval        = errors.New("list.interval_ms must be >= 0")
	ErrInvalidFormat          = errors.New("output.default_format must be table, json or ndjson")
)

// ListConfig is the geometry and behaviour of the virtual list.
type ListConfig struct {
	ItemHeight         int  `yaml:"item_height"`
	ContainerHeight    int  `yaml:"container_height"`
	BatchSize          int  `yaml:"batch_size"`
	IntervalMS         int  `yaml:"interval_ms"`
	Overscan           int  `yaml:"overscan"`
	SnapToBatch        bool `yaml:"snap_to_batch"`
	KeyboardNavigation bool `yaml:"keyboard_navigation"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Config is the full renderwave configuration.
type Config struct {
	List    ListConfig    `yaml:"list"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		List: ListConfig{
			ItemHeight:         DefaultItemHeight,
			ContainerHeight:    DefaultContainerHeight,
			BatchSize:          DefaultBatchSize,
			IntervalMS:         DefaultIntervalMS,
			Overscan:           DefaultOverscan,
			SnapToBatch:        false,
			KeyboardNavigation: true,
		},
		Output: OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		configPath: DefaultPath(),
	}
}

// DefaultPath returns the global config path, honouring RENDERWAVE_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, configFileName)
	}
	return filepath.Join(home, configDirName, configFileName)
}

// ProjectPath returns the project overlay path under dir.
func ProjectPath(dir string) string {
	return filepath.Join(dir, configDirName, configFileName)
}

// New resolves configuration from defaults, the file at path (or the
// default path when empty), the project overlay in the working directory,
// and the environment. A missing file is not an error.
func New(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		cfg.configPath = path
	}

	if err := cfg.loadFile(cfg.configPath); err != nil {
		return nil, err
	}

	if wd, err := os.Getwd(); err == nil {
		overlay := ProjectPath(wd)
		if overlay != cfg.configPath {
			if _, statErr := os.Stat(overlay); statErr == nil {
				if mergeErr := ShallowMergeYAML(cfg, overlay); mergeErr != nil {
					return nil, mergeErr
				}
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies RENDERWAVE_* overrides using lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvItemHeight); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvItemHeight, err)
		}
		c.List.ItemHeight = n
	}
	if v, ok := lookupEnv(EnvBatchSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBatchSize, err)
		}
		c.List.BatchSize = n
	}
	if v, ok := lookupEnv(EnvOutputFormat); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks the configuration for values the list arithmetic cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.List.ItemHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidItemHeight, c.List.ItemHeight))
	}
	if c.List.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidBatchSize, c.List.BatchSize))
	}
	if c.List.ContainerHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidContainerHeight, c.List.ContainerHeight))
	}
	if c.List.Overscan < 0 {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidOverscan, c.List.Overscan))
	}
	if c.List.IntervalMS < 0 {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidInterval, c.List.IntervalMS))
	}
	if !slices.Contains(ValidFormats(), c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w, got %q", ErrInvalidFormat, c.Output.DefaultFormat))
	}
	return errors.Join(errs...)
}

// ValidFormats lists the accepted output formats.
func ValidFormats() []string {
	return []string{FormatTable, FormatJSON, FormatNDJSON}
}

// ConfigPath returns the file this configuration is bound to.
//
//nolint:revive // ConfigPath reads better than Path at call sites.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath binds the configuration to path for Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}
