package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const jumperFile = "jumper.yaml"

// LoadJumper loads the jumper configuration.
// Search order: customPath -> ~/.skyjump/configs/jumper.yaml -> ./configs/jumper.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadJumper(customPath string) (JumperConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return JumperConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseJumper(data)
		if err != nil {
			return JumperConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(jumperFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseJumper(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", jumperFile)); err == nil {
		if cfg, err := parseJumper(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseJumper(defaultJumperYAML)
	if err != nil {
		return DefaultJumperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseJumper(data []byte) (JumperConfig, error) {
	cfg := DefaultJumperConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return JumperConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return JumperConfig{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the simulation relies on.
func (c JumperConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalid)
	case c.Player.Width <= 0 || c.Player.Width >= c.World.Width:
		return fmt.Errorf("%w: player width must be in (0, world width)", ErrInvalid)
	case c.Platforms.Width <= 0 || c.Platforms.Width > c.World.Width:
		return fmt.Errorf("%w: platform width must be in (0, world width]", ErrInvalid)
	case c.Platforms.GapMin <= 0 || c.Platforms.GapMax < c.Platforms.GapMin:
		return fmt.Errorf("%w: platform gaps need 0 < gap_min <= gap_max", ErrInvalid)
	case c.Platforms.MaxCount < 1:
		return fmt.Errorf("%w: platforms.max_count must be at least 1", ErrInvalid)
	case c.Platforms.BreakableChance < 0 || c.Platforms.BonusChance < 0:
		return fmt.Errorf("%w: spawn chances must not be negative", ErrInvalid)
	case c.Ability.SampleEvery < 1:
		return fmt.Errorf("%w: ability.sample_every must be at least 1", ErrInvalid)
	case c.Ability.Max <= 0:
		return fmt.Errorf("%w: ability.max must be positive", ErrInvalid)
	case c.Camera.Lerp <= 0 || c.Camera.Lerp > 1:
		return fmt.Errorf("%w: camera.lerp must be in (0, 1]", ErrInvalid)
	case c.Scoring.UnitsPerPoint <= 0:
		return fmt.Errorf("%w: scoring.units_per_point must be positive", ErrInvalid)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyjump", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *JumperConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Platforms.BreakableChance = 0
		cfg.Platforms.BonusChance = 3
	case DifficultyHard:
		cfg.Platforms.BreakableChance = 6
		cfg.Platforms.BonusChance = 8
	}
}

// ParsePreset maps a flag value to a preset, defaulting to normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", name)
	}
}
