package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyjump/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a game with Q or Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  skyjump menu
  skyjump menu --fps 30
  skyjump menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyPlayFlags(&cfg)

	logger, logCloser, err := newLogger("skyjump", false)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sound, stopSound := openSound(cfg.Audio, logger)
	defer stopSound()

	rc := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, rc)
		if err != nil {
			return err
		}
		rc = result.Config

		switch result.Choice {
		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return nil
			}

		case tui.ChoiceSolo, tui.ChoiceRelay:
			if flagSeed == 0 {
				rc.Seed = time.Now().UnixNano()
			}
			back, err := playOnce(cfg, rc, result.Choice == tui.ChoiceRelay, store, sound, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				logger.Error("game failed", "err", err)
				continue
			}
			if !back {
				return nil
			}

		default:
			return nil
		}
	}
}
