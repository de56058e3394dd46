// Package config defines Randolf's configuration schema: the [general]
// section plus the [[hotkey]] launcher table, loaded once on the main
// goroutine before any other goroutine starts. After Load returns, Config is
// read-only and requires no synchronisation.
package config

import (
	"fmt"
)

const (
	DefaultWindowMargin                   = 20
	DefaultDesktopContainerCount          = 3
	DefaultDelayBeforeDraggingIsAllowedMs = 150
)

// General holds the top-level behavioural settings.
type General struct {
	WindowMargin                       int32 `toml:"window_margin"`
	FileLoggingEnabled                 bool  `toml:"file_logging_enabled"`
	AllowSelectingSameCenterWindows     bool  `toml:"allow_selecting_same_center_windows"`
	DesktopContainerCount               int   `toml:"desktop_container_count"`
	EnableFeaturesUsingMouse           bool  `toml:"enable_features_using_mouse"`
	DelayBeforeDraggingIsAllowedMs     int   `toml:"delay_in_ms_before_dragging_is_allowed"`
}

// Hotkey binds a single key (combined with the configured modifier chord) to
// launching an application.
type Hotkey struct {
	Name           string `toml:"name"`
	Path           string `toml:"path"`
	Hotkey         string `toml:"hotkey"`
	ExecuteAsAdmin bool   `toml:"execute_as_admin"`
}

// Config is the full, validated configuration tree.
type Config struct {
	General General  `toml:"general"`
	Hotkey  []Hotkey `toml:"hotkey"`
}

// Default returns a Config with every field set to its documented default
// and no user-defined hotkey launchers.
func Default() *Config {
	return &Config{
		General: General{
			WindowMargin:                   DefaultWindowMargin,
			FileLoggingEnabled:             true,
			AllowSelectingSameCenterWindows: true,
			DesktopContainerCount:          DefaultDesktopContainerCount,
			EnableFeaturesUsingMouse:       true,
			DelayBeforeDraggingIsAllowedMs: DefaultDelayBeforeDraggingIsAllowedMs,
		},
	}
}

// ValidationError reports which configuration path failed validation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every field the daemon depends on for a sane runtime
// value. It does not touch the filesystem.
func (c *Config) Validate() error {
	if c.General.WindowMargin < 0 {
		return &ValidationError{Path: "general.window_margin", Err: fmt.Errorf("must be >= 0")}
	}
	if c.General.DesktopContainerCount < 1 {
		return &ValidationError{Path: "general.desktop_container_count", Err: fmt.Errorf("must be >= 1")}
	}
	if c.General.DelayBeforeDraggingIsAllowedMs < 0 {
		return &ValidationError{Path: "general.delay_in_ms_before_dragging_is_allowed", Err: fmt.Errorf("must be >= 0")}
	}

	seen := make(map[string]bool, len(c.Hotkey))
	keys := make(map[string]bool, len(c.Hotkey))
	for i, h := range c.Hotkey {
		path := fmt.Sprintf("hotkey[%d]", i)
		if h.Name == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("must not be empty")}
		}
		if h.Path == "" {
			return &ValidationError{Path: path + ".path", Err: fmt.Errorf("must not be empty")}
		}
		if h.Hotkey == "" {
			return &ValidationError{Path: path + ".hotkey", Err: fmt.Errorf("must not be empty")}
		}
		if seen[h.Name] {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("duplicate hotkey name %q", h.Name)}
		}
		seen[h.Name] = true
		if keys[h.Hotkey] {
			return &ValidationError{Path: path + ".hotkey", Err: fmt.Errorf("duplicate hotkey key %q", h.Hotkey)}
		}
		keys[h.Hotkey] = true
	}
	return nil
}
