package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
	"github.com/vovakirdan/skyjump/internal/games/jumper"
	"github.com/vovakirdan/skyjump/internal/storage"
)

// Model is the Bubble Tea model that drives one run of the game.
type Model struct {
	game       *jumper.Game
	screen     *core.Screen
	store      *storage.Store
	rig        *Rig
	log        *log.Logger
	config     core.RuntimeConfig
	player     string
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	back       bool // left to the menu rather than quitting
	embedded   bool // running inside SessionModel
}

// ModelOptions configures a game model.
type ModelOptions struct {
	Config  config.JumperConfig
	Runtime core.RuntimeConfig
	Rig     *Rig
	Store   *storage.Store
	// Player is recorded with every score.
	Player string
	Logger *log.Logger
}

// NewModel creates a game model. The rig stays owned by the caller.
func NewModel(opts ModelOptions) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rig == nil {
		opts.Rig = &Rig{Sound: core.NopSound{}}
	}

	game := jumper.New(opts.Config, jumper.Options{
		Sensor:      opts.Rig.Sensor,
		Sound:       opts.Rig.Sound,
		Coordinator: opts.Rig.Coordinator(),
	})

	return Model{
		game:       game,
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		store:      opts.Store,
		rig:        opts.Rig,
		log:        opts.Logger,
		config:     opts.Runtime,
		player:     opts.Player,
		keys:       NewKeyMapper(opts.Runtime.TickRate),
		inputFrame: core.NewInputFrame(),
	}
}

// Init announces the relay race, if any, and starts the game.
func (m Model) Init() tea.Cmd {
	if m.rig.Relay != nil {
		m.rig.Relay.Start()
	}
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		// The world is scaled at render time, so a resize keeps the run.
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.back = true
		if m.embedded {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.back {
		return m, nil
	}

	m.keys.Tick(&m.inputFrame)
	if m.rig.Remote != nil {
		m.rig.Remote.Apply(&m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.rig.Scores != nil {
		m.rig.Scores.Update(m.gameState.Score)
	}
	if result.Died {
		m.recordDeath()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordDeath saves the finished climb and, in a relay race, the leg.
func (m Model) recordDeath() {
	score := m.gameState.Score
	m.log.Info("player died", "score", score, "phase", m.game.Phase())
	if m.store == nil {
		return
	}

	mode := storage.ModeSolo
	if m.rig.Relay != nil {
		if sess := m.rig.Relay.Session(); sess.IsMultiplayer {
			mode = storage.ModeRelay
			leg := storage.RelayLeg{
				SessionID:  sess.ID,
				PartnerID:  sess.PartnerID,
				StartScore: m.game.StartScore(),
				EndScore:   score,
				Ability:    m.game.Player().Ability(),
			}
			if _, err := m.store.SaveRelayLeg(leg); err != nil {
				m.log.Warn("could not save relay leg", "err", err)
			}
		}
	}

	if score > 0 {
		if _, err := m.store.SaveScore(mode, m.player, score); err != nil {
			m.log.Warn("could not save score", "err", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".skyjump", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Game returns the running game.
func (m Model) Game() *jumper.Game {
	return m.game
}

// WentBack reports whether the player left for the menu.
func (m Model) WentBack() bool {
	return m.back
}

// Run plays one game in the terminal until the player quits or goes back.
// It reports whether the player asked to return to the menu.
func Run(opts ModelOptions) (back bool, err error) {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.back, nil
}
