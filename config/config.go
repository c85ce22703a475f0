// seehuhn.de/go/pen - interactive vector path editing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the user-tunable settings of the pen tool: hit
// tolerances, timing of the debounced transitions, input thresholds and
// modifier key bindings.  Settings are read from an optional pen.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/pen/input"
	"seehuhn.de/go/pen/vpath"
)

// FileName is the name of the configuration file read by [LoadOptional].
const FileName = "pen.yaml"

// Config represents the pen tool configuration.
type Config struct {
	Hit      HitConfig      `yaml:"hit"`
	Timing   TimingConfig   `yaml:"timing"`
	Input    InputConfig    `yaml:"input"`
	Bindings BindingsConfig `yaml:"bindings"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// HitConfig contains hit-testing settings.
type HitConfig struct {
	// Tolerance is the hit radius in screen pixels.  It is divided by the
	// viewport scale before it is used in path coordinates.
	Tolerance float64 `yaml:"tolerance"`
}

// TimingConfig contains the durations of scheduled transitions.
type TimingConfig struct {
	// DoneConfirm is the debounce after placing an anchor or finishing a
	// marquee, during which a double click finishes the session.
	DoneConfirm time.Duration `yaml:"done_confirm"`

	// DoubleClick is the maximum interval between the presses of a double
	// click.  It must not exceed DoneConfirm, since the debounce starts
	// after the first press and a later second press would find it expired.
	DoubleClick time.Duration `yaml:"double_click"`
}

// InputConfig contains settings of the input normalizer.
type InputConfig struct {
	DeadZone            float64 `yaml:"dead_zone"`
	DoubleClickDistance float64 `yaml:"double_click_distance"`
}

// BindingsConfig maps editing gestures to modifier keys.
type BindingsConfig struct {
	// MultiSelect adds to or removes from the selection.
	MultiSelect input.Modifiers `yaml:"multi_select"`

	// FreeHandle decouples the handles while one of them is dragged.
	FreeHandle input.Modifiers `yaml:"free_handle"`

	// ToggleHandler switches an anchor between corner and smooth on click.
	ToggleHandler input.Modifiers `yaml:"toggle_handler"`

	// PullHandle drags a new handle out of a corner anchor.
	PullHandle input.Modifiers `yaml:"pull_handle"`
}

// DefaultsConfig contains defaults for newly created geometry.
type DefaultsConfig struct {
	// HandlerType is used for handles dragged out of a new anchor.
	HandlerType vpath.HandlerType `yaml:"handler_type"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Hit: HitConfig{Tolerance: 6},
		Timing: TimingConfig{
			DoneConfirm: 300 * time.Millisecond,
			DoubleClick: 300 * time.Millisecond,
		},
		Input: InputConfig{
			DeadZone:            3,
			DoubleClickDistance: 5,
		},
		Bindings: BindingsConfig{
			MultiSelect:   input.Shift,
			FreeHandle:    input.Alt,
			ToggleHandler: input.Ctrl,
			PullHandle:    input.Alt,
		},
		Defaults: DefaultsConfig{HandlerType: vpath.Mirror},
	}
}

// Parse decodes YAML configuration data.  Settings missing from data keep
// their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional reads pen.yaml from dir if present, and returns the default
// configuration otherwise.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Hit.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("hit.tolerance must be positive, got %g", c.Hit.Tolerance))
	}
	if c.Timing.DoneConfirm <= 0 {
		errs = append(errs, fmt.Errorf("timing.done_confirm must be positive, got %s", c.Timing.DoneConfirm))
	}
	if c.Timing.DoubleClick < 0 {
		errs = append(errs, fmt.Errorf("timing.double_click must not be negative, got %s", c.Timing.DoubleClick))
	}
	if c.Timing.DoubleClick > c.Timing.DoneConfirm {
		errs = append(errs, fmt.Errorf("timing.double_click (%s) must not exceed timing.done_confirm (%s)",
			c.Timing.DoubleClick, c.Timing.DoneConfirm))
	}
	if c.Input.DeadZone < 0 {
		errs = append(errs, fmt.Errorf("input.dead_zone must not be negative, got %g", c.Input.DeadZone))
	}
	if c.Input.DoubleClickDistance < 0 {
		errs = append(errs, fmt.Errorf("input.double_click_distance must not be negative, got %g", c.Input.DoubleClickDistance))
	}
	if c.Defaults.HandlerType != vpath.Mirror && c.Defaults.HandlerType != vpath.Align &&
		c.Defaults.HandlerType != vpath.Free {
		errs = append(errs, fmt.Errorf("defaults.handler_type must be free, mirror or align, got %s", c.Defaults.HandlerType))
	}
	return errors.Join(errs...)
}

// Normalizer returns an input normalizer using the configured thresholds.
func (c *Config) Normalizer() *input.Normalizer {
	return input.NewNormalizer(c.Input.DeadZone, c.Timing.DoubleClick, c.Input.DoubleClickDistance)
}
