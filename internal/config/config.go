// Package config loads planner settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the planner CLI and server
type Config struct {
	// Output files
	OutputDir       string `yaml:"output_dir"`
	ConfigSpaceFile string `yaml:"config_space_file"`
	PathFile        string `yaml:"path_file"`
	GeoJSONFile     string `yaml:"geojson_file"`

	LogLevel string `yaml:"log_level"`

	// Run history
	DBPath     string `yaml:"db_path"`
	RecordRuns bool   `yaml:"record_runs"`

	// Tolerance in cells when reducing a path to waypoints
	SimplifyEpsilon float64 `yaml:"simplify_epsilon"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Address      string        `yaml:"address"`
	MaxCells     int           `yaml:"max_cells"` // largest grid accepted per request
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Default returns Config with sensible defaults
func Default() Config {
	return Config{
		OutputDir:       "output",
		ConfigSpaceFile: "config-space.txt",
		PathFile:        "solution-path.txt",
		GeoJSONFile:     "solution.geojson",
		LogLevel:        "info",
		DBPath:          "~/.grid-planner/runs.db",
		RecordRuns:      true,
		SimplifyEpsilon: 0.5,
		Server: ServerConfig{
			Address:      ":8080",
			MaxCells:     4_000_000,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Load reads config from a YAML file on top of the defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late
func (c Config) Validate() error {
	var errs []error
	if c.ConfigSpaceFile == "" || c.PathFile == "" || c.GeoJSONFile == "" {
		errs = append(errs, errors.New("output file names must not be empty"))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.SimplifyEpsilon < 0 {
		errs = append(errs, fmt.Errorf("simplify_epsilon must not be negative, got %v", c.SimplifyEpsilon))
	}
	if c.Server.MaxCells <= 0 {
		errs = append(errs, fmt.Errorf("server.max_cells must be positive, got %d", c.Server.MaxCells))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to info
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// OutputPath joins a file name onto the output directory
func (c Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
