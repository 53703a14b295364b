// Package config loads the application configuration from a JSON file.
// All fields are pointers so a partial file is safe: anything omitted falls
// back to the Get* defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration. The schema is stable; new fields are
// added with omitempty and a Get* accessor.
type Config struct {
	DatabasePath *string `json:"database_path,omitempty"`
	Listen       *string `json:"listen,omitempty"`

	DefaultUnit      *string `json:"default_unit,omitempty"`
	DefaultPrecision *int    `json:"default_precision,omitempty"`
	MaxHistory       *int    `json:"max_history,omitempty"`

	SnapTolerance *float64 `json:"snap_tolerance,omitempty"`
	GridSpacing   *float64 `json:"grid_spacing,omitempty"`
	GridExtent    *float64 `json:"grid_extent,omitempty"`
}

// Load reads a Config from a JSON file. Fields omitted from the file keep
// their defaults, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that set values are usable.
func (c *Config) Validate() error {
	if c.DefaultPrecision != nil && (*c.DefaultPrecision < 0 || *c.DefaultPrecision > 10) {
		return fmt.Errorf("default_precision must be between 0 and 10, got %d", *c.DefaultPrecision)
	}
	if c.MaxHistory != nil && *c.MaxHistory < 1 {
		return fmt.Errorf("max_history must be at least 1, got %d", *c.MaxHistory)
	}
	if c.SnapTolerance != nil && *c.SnapTolerance <= 0 {
		return fmt.Errorf("snap_tolerance must be positive, got %f", *c.SnapTolerance)
	}
	if c.GridSpacing != nil && *c.GridSpacing <= 0 {
		return fmt.Errorf("grid_spacing must be positive, got %f", *c.GridSpacing)
	}
	if c.GridExtent != nil && *c.GridExtent <= 0 {
		return fmt.Errorf("grid_extent must be positive, got %f", *c.GridExtent)
	}
	return nil
}

// GetDatabasePath returns the database path or the default.
func (c *Config) GetDatabasePath() string {
	if c.DatabasePath == nil || *c.DatabasePath == "" {
		return "measurekit.db"
	}
	return *c.DatabasePath
}

// GetListen returns the listen address or the default.
func (c *Config) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return ":8080"
	}
	return *c.Listen
}

// GetDefaultUnit returns the default display unit or "feet".
func (c *Config) GetDefaultUnit() string {
	if c.DefaultUnit == nil || *c.DefaultUnit == "" {
		return "feet"
	}
	return *c.DefaultUnit
}

// GetDefaultPrecision returns the default decimal precision or 2.
func (c *Config) GetDefaultPrecision() int {
	if c.DefaultPrecision == nil {
		return 2
	}
	return *c.DefaultPrecision
}

// GetMaxHistory returns the undo history bound or 50.
func (c *Config) GetMaxHistory() int {
	if c.MaxHistory == nil {
		return 50
	}
	return *c.MaxHistory
}

// GetSnapTolerance returns the snap tolerance in feet or 0.5.
func (c *Config) GetSnapTolerance() float64 {
	if c.SnapTolerance == nil {
		return 0.5
	}
	return *c.SnapTolerance
}

// GetGridSpacing returns the fallback grid spacing in feet or 1.
func (c *Config) GetGridSpacing() float64 {
	if c.GridSpacing == nil {
		return 1.0
	}
	return *c.GridSpacing
}

// GetGridExtent returns the fallback grid half-extent in feet or 100.
func (c *Config) GetGridExtent() float64 {
	if c.GridExtent == nil {
		return 100.0
	}
	return *c.GridExtent
}
