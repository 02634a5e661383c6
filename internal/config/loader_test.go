package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseJumper(defaultJumperYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	want := DefaultJumperConfig()
	if cfg != want {
		t.Errorf("embedded defaults differ from DefaultJumperConfig():\n got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadJumperCustomPathPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jumper.yaml")
	data := []byte("platforms:\n  max_count: 8\nmultiplayer:\n  retry_interval: 500ms\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadJumper(path)
	if err != nil {
		t.Fatalf("LoadJumper() error: %v", err)
	}
	if cfg.Platforms.MaxCount != 8 {
		t.Errorf("MaxCount = %d, expected 8", cfg.Platforms.MaxCount)
	}
	if cfg.Multiplayer.RetryInterval != 500*time.Millisecond {
		t.Errorf("RetryInterval = %v, expected 500ms", cfg.Multiplayer.RetryInterval)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpForce != 17 {
		t.Errorf("JumpForce = %f, expected default 17", cfg.Physics.JumpForce)
	}
}

func TestLoadJumperErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadJumper(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("platforms:\n  gap_min: 200\n  gap_max: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadJumper(bad)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*JumperConfig)
		ok     bool
	}{
		{"defaults", func(*JumperConfig) {}, true},
		{"zero world", func(c *JumperConfig) { c.World.Width = 0 }, false},
		{"player wider than world", func(c *JumperConfig) { c.Player.Width = 1000 }, false},
		{"inverted gaps", func(c *JumperConfig) { c.Platforms.GapMax = 10 }, false},
		{"no platforms", func(c *JumperConfig) { c.Platforms.MaxCount = 0 }, false},
		{"zero sampling", func(c *JumperConfig) { c.Ability.SampleEvery = 0 }, false},
		{"lerp too big", func(c *JumperConfig) { c.Camera.Lerp = 2 }, false},
		{"breakables off", func(c *JumperConfig) { c.Platforms.BreakableChance = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultJumperConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, ok expected %v", err, tc.ok)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultJumperConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultJumperConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%f", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}
	if cfg.Platforms.BreakableChance != 6 {
		t.Errorf("hard preset BreakableChance = %d, expected 6", cfg.Platforms.BreakableChance)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}
