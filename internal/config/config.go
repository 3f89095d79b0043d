// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config loads the optional dxvk-cache-tool INI file.  Every
// setting has a default, so a missing file is the same as an empty one.
//
//	[log]
//	level = info
//
//	[output]
//	format = human
//	compression = none
//
//	[input]
//	require_extension = false
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

const (
	appName  = "dxvk-cache-tool"
	fileName = "config.ini"
)

var (
	logLevels     = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}
	outputFormats = []string{"human", "json", "yaml"}
	compressions  = []string{"none", "zstd", "lz4"}
)

// LogConfig is the [log] section.
type LogConfig struct {
	Level string
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	Format      string // human, json or yaml
	Compression string // none, zstd or lz4
}

// InputConfig is the [input] section.
type InputConfig struct {
	RequireExtension bool
}

type Config struct {
	// Path is the file the settings were read from, or empty if none was.
	Path   string
	Log    LogConfig
	Output OutputConfig
	Input  InputConfig
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Format: "human", Compression: "none"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/dxvk-cache-tool/config.ini, or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("os.UserConfigDir: %w", err)
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads the config at path.  If path is empty the default location
// is tried and silently skipped when it does not exist; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Default(), nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return Default(), nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg, err := fromINI(f)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func fromINI(f *ini.File) (*Config, error) {
	cfg := Default()

	if cfg.Log.Level = f.Section("log").Key("level").MustString(cfg.Log.Level); !oneOf(cfg.Log.Level, logLevels) {
		return nil, fmt.Errorf("[log] level: unknown level %q", cfg.Log.Level)
	}

	output := f.Section("output")
	if cfg.Output.Format = output.Key("format").MustString(cfg.Output.Format); !oneOf(cfg.Output.Format, outputFormats) {
		return nil, fmt.Errorf("[output] format: want one of %v, got %q", outputFormats, cfg.Output.Format)
	}
	if cfg.Output.Compression = output.Key("compression").MustString(cfg.Output.Compression); !oneOf(cfg.Output.Compression, compressions) {
		return nil, fmt.Errorf("[output] compression: want one of %v, got %q", compressions, cfg.Output.Compression)
	}

	input := f.Section("input")
	if input.HasKey("require_extension") {
		v, err := input.Key("require_extension").Bool()
		if err != nil {
			return nil, fmt.Errorf("[input] require_extension: %w", err)
		}
		cfg.Input.RequireExtension = v
	}

	return cfg, nil
}

// Save writes cfg to path in the format Load reads, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	f := ini.Empty()
	f.Section("log").Key("level").SetValue(c.Log.Level)
	f.Section("output").Key("format").SetValue(c.Output.Format)
	f.Section("output").Key("compression").SetValue(c.Output.Compression)
	f.Section("input").Key("require_extension").SetValue(fmt.Sprint(c.Input.RequireExtension))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("ini.SaveTo: %w", err)
	}
	return nil
}

func oneOf(s string, candidates []string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
