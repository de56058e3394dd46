package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidate_RejectsNegativeMargin(t *testing.T) {
	cfg := Default()
	cfg.General.WindowMargin = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for negative margin")
	}
}

func TestValidate_RejectsZeroDesktopContainerCount(t *testing.T) {
	cfg := Default()
	cfg.General.DesktopContainerCount = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for zero desktop_container_count")
	}
}

func TestValidate_RejectsDuplicateHotkeyName(t *testing.T) {
	cfg := Default()
	cfg.Hotkey = []Hotkey{
		{Name: "terminal", Path: "/usr/bin/alacritty", Hotkey: "y"},
		{Name: "terminal", Path: "/usr/bin/kitty", Hotkey: "k"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for duplicate hotkey name")
	}
}

func TestValidate_RejectsDuplicateHotkeyKey(t *testing.T) {
	cfg := Default()
	cfg.Hotkey = []Hotkey{
		{Name: "terminal", Path: "/usr/bin/alacritty", Hotkey: "y"},
		{Name: "browser", Path: "/usr/bin/firefox", Hotkey: "y"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for duplicate hotkey key")
	}
}

func TestLoadFromPath_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing config, got %v", err)
	}
	if cfg.General.WindowMargin != DefaultWindowMargin {
		t.Fatalf("expected default margin, got %d", cfg.General.WindowMargin)
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.General.WindowMargin = 30
	cfg.Hotkey = []Hotkey{
		{Name: "terminal", Path: "/usr/bin/alacritty", Hotkey: "y", ExecuteAsAdmin: false},
	}

	if err := cfg.SaveToPath(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.General.WindowMargin != 30 {
		t.Fatalf("expected margin 30, got %d", loaded.General.WindowMargin)
	}
	if len(loaded.Hotkey) != 1 || loaded.Hotkey[0].Name != "terminal" {
		t.Fatalf("expected one hotkey named terminal, got %+v", loaded.Hotkey)
	}
}
