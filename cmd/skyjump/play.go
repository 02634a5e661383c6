package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
	"github.com/vovakirdan/skyjump/internal/platform/tui"
	"github.com/vovakirdan/skyjump/internal/storage"
)

var (
	flagRelay     bool
	flagTransport string
	flagBroker    string
	flagTopic     string
	flagSensor    string
	flagRemote    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start climbing",
	Long: `Start a climb. With --relay the game announces itself on the relay
topic and waits for a partner; if nobody answers it falls back to solo play.

Controls:
  Left/Right, A/D  - Steer
  Space/Up         - Toggle the float ability
  P                - Pause
  Enter/R          - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.skyjump/screenshots
  Q/Esc            - Quit

Difficulty options:
  easy   - Start at lowest difficulty, no breakable platforms
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, more breakable platforms
  fixed  - No progression, stays at config's initial level

Examples:
  skyjump play
  skyjump play --difficulty hard
  skyjump play --relay
  skyjump play --relay --transport ws --broker ws://localhost:8080/relay
  skyjump play --sensor bus --remote`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagRelay, "relay", false, "Race a partner over the relay topic")
}

// addGameFlags registers the transport and device flags shared by play and
// menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagTransport, "transport", "", "Relay transport: mqtt, ws or memory (default from config)")
	cmd.Flags().StringVar(&flagBroker, "broker", "", "Relay broker URL (default from config)")
	cmd.Flags().StringVar(&flagTopic, "topic", "", "Relay topic (default from config)")
	cmd.Flags().StringVar(&flagSensor, "sensor", "", "Finger sensor source: none or bus (default from config)")
	cmd.Flags().BoolVar(&flagRemote, "remote", false, "Accept remote steering and publish the score")
}

// applyPlayFlags overrides config values named on the command line.
func applyPlayFlags(cfg *config.JumperConfig) {
	if flagTransport != "" {
		cfg.Multiplayer.Transport = flagTransport
	}
	if flagBroker != "" {
		cfg.Multiplayer.Broker = flagBroker
	}
	if flagTopic != "" {
		cfg.Multiplayer.Topic = flagTopic
	}
	if flagSensor != "" {
		cfg.Sensor.Source = flagSensor
	}
	if flagRemote {
		cfg.Remote.Enabled = true
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
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

	_, err = playOnce(cfg, runtimeConfig(), flagRelay, store, sound, logger)
	return err
}

// playOnce runs one game with freshly opened collaborators. It reports
// whether the player went back to the menu.
func playOnce(cfg config.JumperConfig, rc core.RuntimeConfig, relay bool, store *storage.Store, sound core.SoundPlayer, logger *log.Logger) (bool, error) {
	rig, err := tui.NewRig(context.Background(), tui.RigOptions{
		Config:   cfg,
		TickRate: rc.TickRate,
		Relay:    relay,
		Sound:    sound,
		Logger:   logger,
	})
	if err != nil {
		return false, fmt.Errorf("cannot join relay race: %w", err)
	}
	defer func() {
		if err := rig.Close(); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	logger.Info("starting climb", "relay", relay, "session", rig.SessionID)
	back, err := tui.Run(tui.ModelOptions{
		Config:  cfg,
		Runtime: rc,
		Rig:     rig,
		Store:   store,
		Player:  playerName(),
		Logger:  logger,
	})
	if err != nil {
		return false, fmt.Errorf("error running game: %w", err)
	}
	return back, nil
}
