package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/skyjump/internal/audio"
	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
	"github.com/vovakirdan/skyjump/internal/storage"
)

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.JumperConfig, error) {
	cfg, err := config.LoadJumper(flagConfig)
	if err != nil {
		return config.JumperConfig{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.JumperConfig{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return config.JumperConfig{}, err
	}
	return cfg, nil
}

// newLogger opens the log destination. Terminal games own the screen, so
// they log to a file; servers log to stderr.
func newLogger(prefix string, toStderr bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}

	if toStderr || flagLogFile == "-" {
		return log.NewWithOptions(os.Stderr, opts), io.NopCloser(os.Stderr), nil
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), f, nil
}

// openStore opens the scores database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

// openSound starts the speaker, falling back to silence.
func openSound(cfg config.AudioConfig, logger *log.Logger) (core.SoundPlayer, func()) {
	if !cfg.Enabled {
		return core.NopSound{}, func() {}
	}
	sm := audio.NewSoundManager(cfg.Volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("sound disabled", "err", err)
		return core.NopSound{}, func() {}
	}
	return sm, sm.Cleanup
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName is recorded with every local score.
func playerName() string {
	for _, key := range []string{"SKYJUMP_PLAYER", "USER", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
