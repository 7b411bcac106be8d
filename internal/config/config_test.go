package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/motorsim/internal/motor"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Voltage != 400 || cfg.Frequency != 32.3 {
		t.Errorf("expected bench defaults, got %v V %v Hz", cfg.Voltage, cfg.Frequency)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Mode() != motor.StepFixed {
		t.Errorf("expected fixed step mode, got %s", cfg.Mode())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"voltage too high", func(c *Config) { c.Voltage = 401 }, motor.ErrOutOfRange},
		{"negative frequency", func(c *Config) { c.Frequency = -1 }, motor.ErrOutOfRange},
		{"zero fps", func(c *Config) { c.FPS = 0 }, motor.ErrOutOfRange},
		{"bad step mode", func(c *Config) { c.StepMode = "vsync" }, motor.ErrUnknownStepMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motorsim.yaml")

	cfg := DefaultConfig()
	cfg.Voltage = 230
	cfg.Frequency = 25
	cfg.StepMode = "elapsed"
	cfg.Theme = "retro"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("frequency: 12.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Frequency != 12.5 || cfg.Voltage != DefaultVoltage || cfg.FPS != DefaultFPS {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("voltage: 9000\n"), 0644)
	if _, err := Load(bad); !errors.Is(err, motor.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("half")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Voltage != 200 || cfg.Frequency != 25 {
		t.Errorf("unexpected preset values %+v", cfg)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("preset should keep default fps, got %d", cfg.FPS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	cfg.Voltage = 1
	if Presets["half"].Voltage != 200 {
		t.Error("GetPreset should return a copy")
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
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
