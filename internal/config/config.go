/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"inkbrush/internal/brush"
	applog "inkbrush/internal/log"
)

// LoggingConfig mirrors log.Options in the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// BrushConfig selects the brush a host starts with.
type BrushConfig struct {
	Preset  string `yaml:"preset"`  // one of brush.PresetNames()
	Color   string `yaml:"color"`   // optional override, hex or color name
	Palette string `yaml:"palette"` // optional palette file (.json, .yaml, .toml)
}

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Brush         BrushConfig   `yaml:"brush"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Brush:         BrushConfig{Preset: "default"},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "INKBRUSH_CONFIG"
	EnvBrushPreset  = "INKBRUSH_BRUSH_PRESET"
	EnvBrushColor   = "INKBRUSH_BRUSH_COLOR"
	EnvBrushPalette = "INKBRUSH_PALETTE"
	// EnvLogLevel Logging envs, shared with the log package
	EnvLogLevel  = applog.EnvLevel
	EnvLogFormat = applog.EnvFormat
	EnvLogSource = applog.EnvSource
	EnvLogFile   = applog.EnvFile
)

// ConfigPath returns the per-user config file path. INKBRUSH_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Inkbrush")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Inkbrush")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "inkbrush")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "inkbrush")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A config file that exists but is not valid YAML is an error.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.ToLower(strings.TrimSpace(src.Brush.Preset)); v != "" {
		dst.Brush.Preset = v
	}
	if v := strings.TrimSpace(src.Brush.Color); v != "" {
		dst.Brush.Color = v
	}
	if v := strings.TrimSpace(src.Brush.Palette); v != "" {
		dst.Brush.Palette = v
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvBrushPreset)); v != "" {
		cfg.Brush.Preset = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvBrushColor)); v != "" {
		cfg.Brush.Color = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBrushPalette)); v != "" {
		cfg.Brush.Palette = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	vars := map[string]string{
		"brush.preset":   EnvBrushPreset,
		"brush.color":    EnvBrushColor,
		"brush.palette":  EnvBrushPalette,
		"logging.level":  EnvLogLevel,
		"logging.format": EnvLogFormat,
		"logging.source": EnvLogSource,
		"logging.file":   EnvLogFile,
	}
	env, ok := vars[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// LogOptions converts the logging section into options for the log package.
func (l LoggingConfig) LogOptions() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}

// Resolve builds the configured starting brush: the named preset, with its color
// replaced when Color is set.
func (b BrushConfig) Resolve() (brush.Brush, error) {
	name := b.Preset
	if name == "" {
		name = "default"
	}
	br, err := brush.Preset(name)
	if err != nil {
		return brush.Brush{}, err
	}
	if strings.TrimSpace(b.Color) != "" {
		c, err := brush.ParseColor(b.Color)
		if err != nil {
			return brush.Brush{}, fmt.Errorf("brush.color: %w", err)
		}
		br.Color = c
	}
	return br, nil
}
