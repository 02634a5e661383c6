package jumper

import (
	"math"

	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
)

// FingerSensor reports how many fingers the player is holding up.
// ok is false when no reading is available.
type FingerSensor interface {
	ReadFingerCount() (count int, ok bool)
}

// PlayerState is the player's position in its state machine.
type PlayerState int

const (
	StateNormal PlayerState = iota
	StateAbility
	StateDead
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateAbility:
		return "ability"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Player is the jumping character.
type Player struct {
	Entity
	start core.Box

	velX, velY float64
	input      int // -1, 0 or +1
	gravity    float64

	dead          bool
	ability       float64
	fiveFingers   bool
	manualAbility bool
	frameNum      int

	cfg    config.JumperConfig
	sensor FingerSensor
	sound  core.SoundPlayer
}

// NewPlayer creates a player standing above the base platform.
// sensor may be nil.
func NewPlayer(cfg config.JumperConfig, sensor FingerSensor, sound core.SoundPlayer) *Player {
	if sound == nil {
		sound = core.NopSound{}
	}
	w := cfg.World
	start := core.NewBox(w.Width/2-cfg.Player.Width/2, w.Height/2+w.Height/4, cfg.Player.Width, cfg.Player.Height)
	p := &Player{
		start:  start,
		cfg:    cfg,
		sensor: sensor,
		sound:  sound,
	}
	p.Reset(cfg.Ability.Max)
	return p
}

// Reset puts the player back at the start with the given ability resource.
func (p *Player) Reset(ability float64) {
	p.box = p.start
	p.velX, p.velY = 0, 0
	p.input = 0
	p.gravity = p.cfg.Physics.Gravity
	p.dead = false
	p.ability = math.Min(ability, p.cfg.Ability.Max)
	p.fiveFingers = false
	p.manualAbility = false
	p.frameNum = 0
}

// State returns the current state machine state.
func (p *Player) State() PlayerState {
	switch {
	case p.dead:
		return StateDead
	case p.fiveFingers:
		return StateAbility
	default:
		return StateNormal
	}
}

// Dead reports whether the player has died since the last Reset.
func (p *Player) Dead() bool {
	return p.dead
}

// Ability returns the raw ability resource. It may dip slightly below zero.
func (p *Player) Ability() float64 {
	return p.ability
}

// AbilityActive reports whether the float ability is on.
func (p *Player) AbilityActive() bool {
	return p.fiveFingers
}

// Velocity returns the current velocity.
func (p *Player) Velocity() (float64, float64) {
	return p.velX, p.velY
}

// Glyph implements Drawable.
func (p *Player) Glyph() (rune, core.Color) {
	if p.fiveFingers {
		return '█', core.ColorBrightMagenta
	}
	return '█', core.ColorBrightWhite
}

// KeyDown handles a key press.
func (p *Player) KeyDown(a core.Action) {
	switch a {
	case core.ActionLeft:
		p.velX = -p.cfg.Physics.StartSpeed
		p.input = -1
	case core.ActionRight:
		p.velX = p.cfg.Physics.StartSpeed
		p.input = 1
	case core.ActionAbility:
		p.manualAbility = !p.manualAbility
	}
}

// KeyUp handles a key release. Releasing a direction only stops steering
// if it is the direction currently held.
func (p *Player) KeyUp(a core.Action) {
	if (a == core.ActionLeft && p.input == -1) || (a == core.ActionRight && p.input == 1) {
		p.input = 0
	}
}

// Update advances the player by one tick. It reports true on the tick the
// player dies.
func (p *Player) Update(cam *Camera, lvl *Level) bool {
	if p.dead {
		return false
	}
	if cam.ToScreen(p.box).Y > p.cfg.World.Height*p.cfg.Camera.DeathDepth {
		p.dead = true
		p.fiveFingers = false
		p.sound.Play(core.CueDeath)
		return true
	}

	p.integrate()

	p.box.X = core.Mod(p.box.X+p.velX, p.cfg.World.Width-p.box.W)
	p.box.Y += p.velY

	ResolveCollisions(p, lvl)

	ac := p.cfg.Ability
	if !p.fiveFingers && p.ability < ac.Max {
		p.ability = math.Min(ac.Max, p.ability+ac.Regen())
	}

	p.frameNum++
	if p.frameNum%ac.SampleEvery == 0 {
		p.sampleAbility()
	}
	return false
}

// integrate applies gravity and steering, then clamps velocity.
func (p *Player) integrate() {
	ph := p.cfg.Physics
	p.velY += p.gravity
	if p.input != 0 {
		p.velX += float64(p.input) * ph.Accel
	} else if p.velX != 0 {
		p.velX -= math.Copysign(ph.Deccel, p.velX)
		p.velX = math.Round(p.velX)
	}

	p.velY = math.Round(core.ClampF(p.velY, -ph.MaxSpeedY, ph.MaxSpeedY)*100) / 100
	p.velX = math.Round(core.ClampF(p.velX, -ph.MaxSpeedX, ph.MaxSpeedX))
}

// sampleAbility runs on every sampled tick. The manual toggle wins and
// skips the sensor read entirely.
func (p *Player) sampleAbility() {
	if p.manualAbility && p.ability > 0 {
		p.activate()
		return
	}
	p.deactivate()

	if p.sensor == nil {
		return
	}
	count, ok := p.sensor.ReadFingerCount()
	if ok && count >= p.cfg.Ability.FingerThreshold && p.ability > 0 {
		p.activate()
	}
}

func (p *Player) activate() {
	p.gravity = p.cfg.Physics.Gravity * p.cfg.Ability.GravityFactor
	p.fiveFingers = true
	p.ability -= p.cfg.Ability.Cost
}

func (p *Player) deactivate() {
	p.gravity = p.cfg.Physics.Gravity
	p.fiveFingers = false
}

// jump launches the player upward with the given force after snapping its
// bottom edge to top.
func (p *Player) jump(top, force float64) {
	p.box.Y = top - p.box.H
	p.velY = -force
}
