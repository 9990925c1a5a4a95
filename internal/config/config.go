// Package config provides configuration management for monsterdex.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Config holds the complete application configuration.
type Config struct {
	Data     DataConfig     `toml:"data"`
	Display  DisplayConfig  `toml:"display"`
	Farm     FarmConfig     `toml:"farm"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
}

// DataConfig locates the three catalog data files.
type DataConfig struct {
	Dir           string `toml:"dir"`
	UsageFile     string `toml:"usage_file"`
	ParentageFile string `toml:"parentage_file"`
	CreatureFile  string `toml:"creature_file"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme         ColorScheme `toml:"color_scheme"`
	ShowResistances     bool        `toml:"show_resistances"`
	ShowFarmAfterSearch bool        `toml:"show_farm_after_search"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreenPhosphor ColorScheme = "green_phosphor"
	ColorSchemeAmber         ColorScheme = "amber"
	ColorSchemeWhite         ColorScheme = "white"
)

// FarmConfig controls the session farm.
type FarmConfig struct {
	Limit int `toml:"limit"`
}

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// SlogLevel maps the level to its slog equivalent. Unset means info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseConfig controls the SQLite catalog export.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Data.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("data: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Farm.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("farm: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the data configuration is valid.
func (d *DataConfig) Validate() error {
	var errs []error

	if d.Dir == "" {
		errs = append(errs, errors.New("dir is required"))
	}

	files := []struct {
		key  string
		name string
	}{
		{"usage_file", d.UsageFile},
		{"parentage_file", d.ParentageFile},
		{"creature_file", d.CreatureFile},
	}
	for _, f := range files {
		switch {
		case f.name == "":
			errs = append(errs, fmt.Errorf("%s is required", f.key))
		case filepath.IsAbs(f.name) || strings.Contains(filepath.ToSlash(f.name), "/"):
			errs = append(errs, fmt.Errorf("%s must be a file name inside dir: %s", f.key, f.name))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreenPhosphor: true,
		ColorSchemeAmber:         true,
		ColorSchemeWhite:         true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the farm configuration is valid.
func (f *FarmConfig) Validate() error {
	if f.Limit < 1 {
		return errors.New("limit must be positive")
	}
	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           "data",
			UsageFile:     "monster_use_data.txt",
			ParentageFile: "monster_parent_pairs.txt",
			CreatureFile:  "monster_data.txt",
		},
		Display: DisplayConfig{
			ColorScheme:         ColorSchemeGreenPhosphor,
			ShowResistances:     true,
			ShowFarmAfterSearch: false,
		},
		Farm: FarmConfig{
			Limit: 30,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "",
		},
		Database: DatabaseConfig{
			Path: "monsterdex.db",
		},
	}
}
