package config

import "testing"

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{1000, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %f, expected %f", tc.score, got, tc.expected)
		}
	}

	d.SetEnabled(false)
	if got := d.Level(100, 0); got != 0.2 {
		t.Errorf("disabled Level() = %f, expected initial 0.2", got)
	}
}

func TestGapWindowStaysInBounds(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{GapShift: 0.5},
	}
	d := NewDifficultyManager(cfg)

	for score := 0; score <= 20; score++ {
		lo, hi := d.GapWindow(50, 150, score, 0)
		if lo < 50 || hi > 150 || lo > hi {
			t.Fatalf("score %d: window [%f, %f] escapes [50, 150]", score, lo, hi)
		}
	}

	lo, hi := d.GapWindow(50, 150, 0, 0)
	if lo != 50 || hi != 100 {
		t.Errorf("easy window = [%f, %f], expected [50, 100]", lo, hi)
	}
	lo, hi = d.GapWindow(50, 150, 10, 0)
	if lo != 100 || hi != 150 {
		t.Errorf("hard window = [%f, %f], expected [100, 150]", lo, hi)
	}
}

func TestBreakableChance(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:     ScalingConfig{BreakableBoost: 20},
	}
	d := NewDifficultyManager(cfg)

	if got := d.BreakableChance(12, 0, 0); got != 12 {
		t.Errorf("BreakableChance at start = %d, expected 12", got)
	}
	if got := d.BreakableChance(12, 0, 100); got != 2 {
		t.Errorf("BreakableChance at max = %d, expected floor 2", got)
	}
	if got := d.BreakableChance(0, 0, 100); got != 0 {
		t.Errorf("disabled breakables should stay 0, got %d", got)
	}
}
