package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Element != "int" {
		t.Errorf("expected element int, got %s", cfg.Element)
	}
	if cfg.Appends <= 0 {
		t.Error("appends should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Ints) != 3 || cfg.Ints[2] != 3 {
		t.Errorf("expected ints [1 2 3], got %v", cfg.Ints)
	}
	if cfg.Render.Width != DefaultWidth {
		t.Errorf("expected default width, got %d", cfg.Render.Width)
	}

	cfg.Ints[0] = 99
	if Presets["small"].Ints[0] != 1 {
		t.Error("GetPreset returned a preset that aliases the table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"strings", func(c *Config) { c.Element = "string" }, true},
		{"unknown element", func(c *Config) { c.Element = "float" }, false},
		{"negative appends", func(c *Config) { c.Appends = -1 }, false},
		{"negative reserve", func(c *Config) { c.Reserve = -1 }, false},
		{"limited without limit", func(c *Config) { c.Allocator.Name = "limited" }, false},
		{"limited", func(c *Config) { c.Allocator = AllocatorConfig{Name: "limited", LimitBytes: 64} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, want valid=%v", err, tt.valid)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veclib.yaml")
	cfg := GetPreset("strings")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Element != "string" {
		t.Errorf("expected element string, got %s", loaded.Element)
	}
	if len(loaded.Strings) != 1 || loaded.Strings[0] != "hello" {
		t.Errorf("expected strings [hello], got %v", loaded.Strings)
	}
	if loaded.Allocator.Name != "pool" {
		t.Errorf("expected pool allocator, got %s", loaded.Allocator.Name)
	}
	if loaded.Seeds() != 1 {
		t.Errorf("expected 1 seed, got %d", loaded.Seeds())
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(dir, "bad.yaml")
	if err := Save(path, &Config{Element: "complex128"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}
