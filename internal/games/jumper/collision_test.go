package jumper

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/skyjump/internal/core"
)

// fallingOnto positions the player so its bottom overlaps a box whose top
// is at y, falling at vy.
func fallingOnto(p *Player, x, y, vy float64) {
	p.box = core.NewBox(x, y-p.box.H+2, p.box.W, p.box.H)
	p.velY = vy
}

func springPlatform(x, y float64) *Platform {
	cfg := testConfig()
	pl := &Platform{Entity: NewEntity(x, y, cfg.Platforms.Width, cfg.Platforms.Height), Variant: VariantSpring}
	pl.Bonus = &Bonus{
		Entity: NewEntity(x+(cfg.Platforms.Width-cfg.Bonus.Width)/2, y-cfg.Bonus.Height, cfg.Bonus.Width, cfg.Bonus.Height),
		Force:  cfg.Bonus.JumpForce,
	}
	return pl
}

func TestResolveCollisionsBonus(t *testing.T) {
	cfg := testConfig()
	sound := &recordingSound{}
	p := NewPlayer(cfg, nil, sound)
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)

	spring := springPlatform(400, 500)
	lvl.platforms = []*Platform{spring}
	p.ability = 50
	fallingOnto(p, 460, spring.Bonus.Box().Y, 5)

	res := ResolveCollisions(p, lvl)
	if res.Bonuses != 1 || res.Platforms != 0 {
		t.Fatalf("Landing = %+v, want one bonus contact", res)
	}
	if _, vy := p.Velocity(); vy != -cfg.Bonus.JumpForce {
		t.Errorf("vy = %v, want %v", vy, -cfg.Bonus.JumpForce)
	}
	if p.Ability() != 60 {
		t.Errorf("ability = %v, want 60", p.Ability())
	}
	if p.Box().Bottom() != spring.Bonus.Box().Y {
		t.Errorf("player bottom %v, want bonus top %v", p.Box().Bottom(), spring.Bonus.Box().Y)
	}
	if sound.count(core.CueBonus) != 1 || sound.count(core.CueJump) != 0 {
		t.Errorf("cues = %v, want a single bonus cue", sound.cues)
	}
}

func TestResolveCollisionsBonusCapsAbility(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(cfg, nil, nil)
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)
	spring := springPlatform(400, 500)
	lvl.platforms = []*Platform{spring}
	p.ability = 95
	fallingOnto(p, 460, spring.Bonus.Box().Y, 5)

	ResolveCollisions(p, lvl)
	if p.Ability() != cfg.Ability.Max {
		t.Errorf("ability = %v, want %v", p.Ability(), cfg.Ability.Max)
	}
}

func TestResolveCollisionsIgnoresRisingPlayer(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(cfg, nil, nil)
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)
	pl := &Platform{Entity: NewEntity(400, 500, 150, 10)}
	lvl.platforms = []*Platform{pl}

	for _, vy := range []float64{-10, 0, cfg.Physics.FallThreshold} {
		fallingOnto(p, 420, 500, vy)
		if res := ResolveCollisions(p, lvl); res.Landed() {
			t.Errorf("vy=%v: landed, want pass-through", vy)
		}
	}
}

func TestResolveCollisionsOrderIndependent(t *testing.T) {
	cfg := testConfig()
	spring := springPlatform(300, 500)
	plain := &Platform{Entity: NewEntity(390, 485, 150, 10)}
	breakable := &Platform{Entity: NewEntity(410, 488, 150, 10), Variant: VariantBreakable}

	orders := [][]*Platform{
		{spring, plain, breakable},
		{breakable, plain, spring},
		{plain, breakable, spring},
	}
	var first *Landing
	var firstBox core.Box
	for _, order := range orders {
		p := NewPlayer(cfg, nil, nil)
		lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)
		lvl.platforms = order
		fallingOnto(p, 380, 488, 5)

		res := ResolveCollisions(p, lvl)
		if first == nil {
			first, firstBox = &res, p.Box()
			continue
		}
		if res != *first || p.Box() != firstBox {
			t.Errorf("order changed the outcome: %+v at %+v, want %+v at %+v", res, p.Box(), *first, firstBox)
		}
	}
	if first.Force != cfg.Bonus.JumpForce {
		t.Errorf("Force = %v, want the spring force %v", first.Force, cfg.Bonus.JumpForce)
	}
	if first.Bonuses != 1 || first.Platforms != 2 {
		t.Errorf("Landing = %+v, want one bonus and two platform contacts", *first)
	}
	if first.Broken != 1 {
		t.Errorf("Broken = %d, want 1", first.Broken)
	}
}
