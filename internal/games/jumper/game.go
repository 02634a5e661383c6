package jumper

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
	"github.com/vovakirdan/skyjump/internal/multiplayer"
)

// Phase is the game loop's lifecycle stage.
type Phase int

const (
	PhaseCountdown Phase = iota // frozen world, counting down to the start
	PhaseRunning                // simulation advancing
	PhaseWaiting                // relay race: the partner is playing or being looked for
	PhaseGameOver               // solo: dead, waiting for a restart
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhaseWaiting:
		return "waiting"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Coordinator drives the relay race. *multiplayer.Relay implements it.
type Coordinator interface {
	Poll() []multiplayer.Event
	ReportDeath(score int, ability float64)
	BeginRound()
	Session() multiplayer.Session
}

// Options wires the game's external collaborators. Every field is optional.
type Options struct {
	Sensor      FingerSensor
	Sound       core.SoundPlayer
	Coordinator Coordinator // nil for solo play
}

// Game owns one run of the jumper: camera, player and level, plus the
// countdown/running/game-over lifecycle and the relay race hand-over.
type Game struct {
	cfg        config.JumperConfig
	opts       Options
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	cam    *Camera
	player *Player
	level  *Level

	phase        Phase
	countdown    int
	score        int
	initialScore int
	ticks        int
	paused       bool

	partnerID string
	legs      int // legs this side has started in the current relay race
	status    string
}

// New creates a game. Call Reset before the first Step.
func New(cfg config.JumperConfig, opts Options) *Game {
	if opts.Sound == nil {
		opts.Sound = core.NopSound{}
	}
	g := &Game{
		cfg:        cfg,
		opts:       opts,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	g.cam = NewCamera(cfg.World.Height, cfg.Camera.Lerp)
	g.player = NewPlayer(cfg, opts.Sensor, opts.Sound)
	return g
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "skyjump"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sky Jump"
}

// Reset reseeds the world and starts over. In a relay race the game waits
// for the session to decide who climbs first.
func (g *Game) Reset(rc core.RuntimeConfig) {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.level = NewLevel(g.cfg, g.rng, g.difficulty)
	g.partnerID = ""
	g.legs = 0
	g.status = ""

	g.Restart(0, g.cfg.Ability.Max)
	if g.multiplayer() {
		g.phase = PhaseWaiting
		g.status = "Looking for a partner..."
	}
}

// Restart begins a new leg from the given score and ability resource.
func (g *Game) Restart(score int, ability float64) {
	g.cam.Reset()
	g.level.Reset()
	g.player.Reset(ability)
	g.initialScore = score
	g.score = score
	g.ticks = 0
	g.paused = false
	g.level.SetProgress(score, 0)
	g.phase = PhaseCountdown
	g.countdown = g.cfg.CountdownTicks
	if g.countdown <= 0 {
		g.phase = PhaseRunning
	}
	if g.opts.Coordinator != nil {
		g.opts.Coordinator.BeginRound()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.opts.Coordinator != nil {
		for _, ev := range g.opts.Coordinator.Poll() {
			g.handleEvent(ev)
		}
	}

	switch g.phase {
	case PhaseGameOver:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.Restart(0, g.cfg.Ability.Max)
		}
		return core.StepResult{State: g.State()}
	case PhaseWaiting:
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.phase == PhaseCountdown {
		g.countdown--
		if g.countdown > 0 {
			return core.StepResult{State: g.State()}
		}
		g.phase = PhaseRunning
	}

	return g.run(in)
}

// run advances the simulation by one tick.
func (g *Game) run(in core.InputFrame) core.StepResult {
	g.ticks++
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionAbility} {
		if in.Has(a) {
			g.player.KeyDown(a)
		}
		if in.WasReleased(a) {
			g.player.KeyUp(a)
		}
	}

	died := g.player.Update(g.cam, g.level)
	if !g.player.Dead() {
		g.cam.Update(g.player.Box())
		g.score = g.initialScore + int(math.Floor(-g.cam.Y()/g.cfg.Scoring.UnitsPerPoint))
	}
	g.level.SetProgress(g.score, g.ticks)
	g.level.Update(g.cam.Y())

	if died {
		g.onDeath()
	}
	return core.StepResult{State: g.State(), Died: died}
}

func (g *Game) onDeath() {
	if g.multiplayer() {
		g.opts.Coordinator.ReportDeath(g.score, g.player.Ability())
		g.phase = PhaseWaiting
		g.status = "Partner's turn..."
		return
	}
	g.phase = PhaseGameOver
}

// handleEvent applies a relay race session change. A leg only starts from
// the waiting phase, so a late copy of a hand-over never restarts a climb.
func (g *Game) handleEvent(ev multiplayer.Event) {
	switch e := ev.(type) {
	case multiplayer.MatchedEvent:
		if g.phase != PhaseWaiting {
			return
		}
		g.partnerID = e.PartnerID
		g.legs++
		g.status = ""
		g.Restart(0, g.cfg.Ability.Max)
	case multiplayer.PartnerFoundEvent:
		g.partnerID = e.PartnerID
		g.phase = PhaseWaiting
		g.status = "Partner found, they climb first"
	case multiplayer.YieldEvent:
		g.partnerID = e.PartnerID
		g.phase = PhaseWaiting
		g.status = "Partner found, they climb first"
	case multiplayer.PartnerDiedEvent:
		if g.phase != PhaseWaiting {
			return
		}
		g.partnerID = e.PartnerID
		g.legs++
		g.status = ""
		g.Restart(e.Score, e.Ability)
	case multiplayer.FallbackSoloEvent:
		g.partnerID = ""
		g.status = ""
		g.Restart(0, g.cfg.Ability.Max)
	}
}

// multiplayer reports whether a relay race session is active.
func (g *Game) multiplayer() bool {
	return g.opts.Coordinator != nil && g.opts.Coordinator.Session().IsMultiplayer
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver || g.player.Dead(),
		Paused:   g.paused,
	}
}

// Phase returns the lifecycle stage.
func (g *Game) Phase() Phase {
	return g.phase
}

// Player returns the player.
func (g *Game) Player() *Player {
	return g.player
}

// Level returns the level.
func (g *Game) Level() *Level {
	return g.level
}

// Camera returns the camera.
func (g *Game) Camera() *Camera {
	return g.cam
}

// StartScore returns the score the current leg started from.
func (g *Game) StartScore() int {
	return g.initialScore
}

// Status returns the relay race status line shown while waiting.
func (g *Game) Status() string {
	return g.status
}

// PartnerID returns the relay partner's session id, if any.
func (g *Game) PartnerID() string {
	return g.partnerID
}

// Legs returns how many legs this side has started in the relay race.
func (g *Game) Legs() int {
	return g.legs
}
