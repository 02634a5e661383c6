package config

import "math"

// DifficultyManager calculates dynamic level parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GapWindow returns the sub-range of [gapMin, gapMax] that vertical platform
// gaps are sampled from. The window keeps its width and slides toward gapMax
// as difficulty rises, so the result never leaves the configured bounds.
func (d *DifficultyManager) GapWindow(gapMin, gapMax float64, score int, ticks int) (float64, float64) {
	if gapMax <= gapMin {
		return gapMin, gapMin
	}
	shift := clampF(d.cfg.Scaling.GapShift, 0.0, 1.0)
	span := gapMax - gapMin
	width := span * (1.0 - shift)
	lo := gapMin + d.Level(score, ticks)*span*shift
	hi := math.Min(gapMax, lo+width)
	return lo, hi
}

// BreakableChance returns the 1-in-N breakable chance for the current level.
// Lower N means more breakable platforms; the result is never below 2.
func (d *DifficultyManager) BreakableChance(base int, score int, ticks int) int {
	if base < 2 {
		return base
	}
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.BreakableBoost))
	result := base - reduction
	if result < 2 {
		result = 2
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
