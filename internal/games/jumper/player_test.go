package jumper

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
)

func testConfig() config.JumperConfig {
	cfg := config.DefaultJumperConfig()
	cfg.CountdownTicks = 0
	return cfg
}

// fixedSensor always reports the same count and remembers how often it
// was asked.
type fixedSensor struct {
	count int
	ok    bool
	reads int
}

func (s *fixedSensor) ReadFingerCount() (int, bool) {
	s.reads++
	return s.count, s.ok
}

// recordingSound remembers every cue played.
type recordingSound struct {
	cues []core.Cue
}

func (r *recordingSound) Play(c core.Cue) {
	r.cues = append(r.cues, c)
}

func (r *recordingSound) count(c core.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func newTestWorld(cfg config.JumperConfig, sensor FingerSensor) (*Player, *Camera, *Level) {
	p := NewPlayer(cfg, sensor, nil)
	cam := NewCamera(cfg.World.Height, cfg.Camera.Lerp)
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)
	lvl.Reset()
	return p, cam, lvl
}

func TestPlayerLandsOnBasePlatform(t *testing.T) {
	cfg := testConfig()
	p, cam, lvl := newTestWorld(cfg, nil)
	base := lvl.Platforms()[0].Box()

	for i := 0; i < 20; i++ {
		p.Update(cam, lvl)
		if _, vy := p.Velocity(); vy == -cfg.Physics.JumpForce {
			if got := p.Box().Bottom(); math.Abs(got-base.Y) > 1e-9 {
				t.Errorf("player bottom = %v after landing, want %v", got, base.Y)
			}
			return
		}
	}
	t.Fatal("player never bounced off the base platform")
}

func TestPlayerAbilityBounds(t *testing.T) {
	cfg := testConfig()
	sensor := &fixedSensor{count: 5, ok: true}
	p, cam, lvl := newTestWorld(cfg, sensor)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000 && !p.Dead(); i++ {
		if rng.Intn(10) == 0 {
			p.KeyDown(core.ActionAbility)
		}
		p.Update(cam, lvl)
		cam.Update(p.Box())
		lvl.Update(cam.Y())

		if a := p.Ability(); a < -cfg.Ability.Cost || a > cfg.Ability.Max {
			t.Fatalf("tick %d: ability %v outside [%v, %v]", i, a, -cfg.Ability.Cost, cfg.Ability.Max)
		}
	}
}

func TestPlayerWrapsHorizontally(t *testing.T) {
	cfg := testConfig()
	for _, dir := range []core.Action{core.ActionLeft, core.ActionRight} {
		t.Run(dir.String(), func(t *testing.T) {
			p, cam, lvl := newTestWorld(cfg, nil)
			p.KeyDown(dir)
			limit := cfg.World.Width - cfg.Player.Width
			for i := 0; i < 500 && !p.Dead(); i++ {
				p.Update(cam, lvl)
				cam.Update(p.Box())
				lvl.Update(cam.Y())
				if x := p.Box().X; x < 0 || x >= limit {
					t.Fatalf("tick %d: x = %v outside [0, %v)", i, x, limit)
				}
			}
		})
	}
}

func TestPlayerDeadIsFinal(t *testing.T) {
	cfg := testConfig()
	sound := &recordingSound{}
	p := NewPlayer(cfg, nil, sound)
	cam := NewCamera(cfg.World.Height, cfg.Camera.Lerp)
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)

	deaths := 0
	for i := 0; i < 1000; i++ {
		if p.Update(cam, lvl) {
			deaths++
		}
	}
	if !p.Dead() || p.State() != StateDead {
		t.Fatal("player without platforms should have died")
	}
	if deaths != 1 {
		t.Errorf("Update reported death %d times, want 1", deaths)
	}
	if got := sound.count(core.CueDeath); got != 1 {
		t.Errorf("death cue played %d times, want 1", got)
	}

	box := p.Box()
	p.KeyDown(core.ActionRight)
	p.Update(cam, lvl)
	if p.Box().Y != box.Y || !p.Dead() {
		t.Error("dead player should not move or revive")
	}

	p.Reset(cfg.Ability.Max)
	if p.Dead() {
		t.Error("Reset should revive the player")
	}
}

func TestPlayerKeyUpOnlyClearsHeldDirection(t *testing.T) {
	p := NewPlayer(testConfig(), nil, nil)
	p.KeyDown(core.ActionRight)
	p.KeyUp(core.ActionLeft)
	if p.input != 1 {
		t.Errorf("input = %d after releasing the other direction, want 1", p.input)
	}
	p.KeyUp(core.ActionRight)
	if p.input != 0 {
		t.Errorf("input = %d after release, want 0", p.input)
	}
}

func TestPlayerKeyDownSetsStartSpeed(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(cfg, nil, nil)
	p.KeyDown(core.ActionLeft)
	if vx, _ := p.Velocity(); vx != -cfg.Physics.StartSpeed {
		t.Errorf("vx = %v, want %v", vx, -cfg.Physics.StartSpeed)
	}
	p.KeyDown(core.ActionRight)
	if vx, _ := p.Velocity(); vx != cfg.Physics.StartSpeed {
		t.Errorf("vx = %v, want %v", vx, cfg.Physics.StartSpeed)
	}
}

func TestPlayerDeceleratesToRest(t *testing.T) {
	cfg := testConfig()
	p, cam, lvl := newTestWorld(cfg, nil)
	p.KeyDown(core.ActionRight)
	p.KeyUp(core.ActionRight)
	for i := 0; i < 50; i++ {
		p.Update(cam, lvl)
	}
	if vx, _ := p.Velocity(); vx != 0 {
		t.Errorf("vx = %v after releasing, want 0", vx)
	}
}

func TestPlayerAbilitySampling(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name       string
		sensor     *fixedSensor
		manual     bool
		wantActive bool
		wantReads  int
	}{
		{"no sensor reading", &fixedSensor{ok: false}, false, false, 1},
		{"too few fingers", &fixedSensor{count: 4, ok: true}, false, false, 1},
		{"five fingers", &fixedSensor{count: 5, ok: true}, false, true, 1},
		{"manual toggle skips sensor", &fixedSensor{count: 0, ok: true}, true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, cam, lvl := newTestWorld(cfg, tt.sensor)
			if tt.manual {
				p.KeyDown(core.ActionAbility)
			}
			for i := 0; i < cfg.Ability.SampleEvery; i++ {
				p.Update(cam, lvl)
			}
			if got := p.AbilityActive(); got != tt.wantActive {
				t.Errorf("AbilityActive() = %v, want %v", got, tt.wantActive)
			}
			if tt.sensor.reads != tt.wantReads {
				t.Errorf("sensor read %d times, want %d", tt.sensor.reads, tt.wantReads)
			}
			want := cfg.Ability.Max
			if tt.wantActive {
				want -= cfg.Ability.Cost
				if p.gravity != cfg.Physics.Gravity*cfg.Ability.GravityFactor {
					t.Errorf("gravity = %v while floating", p.gravity)
				}
			}
			if p.Ability() != want {
				t.Errorf("Ability() = %v, want %v", p.Ability(), want)
			}
		})
	}
}

func TestPlayerAbilityNeedsResource(t *testing.T) {
	cfg := testConfig()
	p, cam, lvl := newTestWorld(cfg, &fixedSensor{count: 5, ok: true})
	p.Reset(0)
	for i := 0; i < cfg.Ability.SampleEvery; i++ {
		p.Update(cam, lvl)
	}
	// Regeneration leaves a fraction above zero, which is enough to activate.
	if !p.AbilityActive() {
		t.Fatal("ability should activate on a positive resource")
	}
	if p.Ability() >= 0 {
		t.Errorf("Ability() = %v, want a small negative after activation", p.Ability())
	}
	for i := 0; i < cfg.Ability.SampleEvery; i++ {
		p.Update(cam, lvl)
	}
	if p.AbilityActive() {
		t.Error("ability should not activate on an exhausted resource")
	}
}
