package jumper

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/skyjump/internal/config"
)

func TestGenerateNextBounds(t *testing.T) {
	cfg := testConfig()
	pc := cfg.Platforms
	maxX := cfg.World.Width - pc.Width

	for _, dm := range []*config.DifficultyManager{nil, config.NewDifficultyManager(cfg.Difficulty)} {
		lvl := NewLevel(cfg, rand.New(rand.NewSource(3)), dm)
		for i := 0; i < 2000; i++ {
			lvl.SetProgress(i, i)
			above := float64(-i * 10)
			p := lvl.GenerateNext(above)
			b := p.Box()

			gap := above - b.Y
			if gap < pc.GapMin || gap > pc.GapMax {
				t.Fatalf("gap %v outside [%v, %v]", gap, pc.GapMin, pc.GapMax)
			}
			if b.X < 0 || b.X > maxX {
				t.Fatalf("x %v outside [0, %v]", b.X, maxX)
			}
			if b.W != pc.Width || b.H != pc.Height {
				t.Fatalf("size %vx%v, want %vx%v", b.W, b.H, pc.Width, pc.Height)
			}
		}
	}
}

func TestGenerateNextVariants(t *testing.T) {
	cfg := testConfig()
	lvl := NewLevel(cfg, rand.New(rand.NewSource(5)), nil)
	counts := map[Variant]int{}

	for i := 0; i < 3000; i++ {
		p := lvl.GenerateNext(0)
		counts[p.Variant]++
		switch p.Variant {
		case VariantSpring:
			if p.Bonus == nil {
				t.Fatal("spring platform without a bonus")
			}
			pb, bb := p.Box(), p.Bonus.Box()
			if math.Abs(bb.Bottom()-pb.Y) > 1e-9 {
				t.Errorf("bonus bottom %v, want platform top %v", bb.Bottom(), pb.Y)
			}
			if math.Abs((bb.X+bb.W/2)-(pb.X+pb.W/2)) > 1e-9 {
				t.Errorf("bonus not centred on its platform")
			}
			if p.Bonus.Force != cfg.Bonus.JumpForce {
				t.Errorf("bonus force %v, want %v", p.Bonus.Force, cfg.Bonus.JumpForce)
			}
		default:
			if p.Bonus != nil {
				t.Fatalf("%s platform carries a bonus", p.Variant)
			}
		}
	}
	for _, v := range []Variant{VariantNormal, VariantBreakable, VariantSpring} {
		if counts[v] == 0 {
			t.Errorf("no %s platforms generated", v)
		}
	}
}

func TestGenerateNextZeroChancesDisableVariants(t *testing.T) {
	cfg := testConfig()
	cfg.Platforms.BreakableChance = 0
	cfg.Platforms.BonusChance = 0
	lvl := NewLevel(cfg, rand.New(rand.NewSource(5)), nil)
	for i := 0; i < 500; i++ {
		if p := lvl.GenerateNext(0); p.Variant != VariantNormal {
			t.Fatalf("got %s platform with variants disabled", p.Variant)
		}
	}
}

func TestLevelReset(t *testing.T) {
	cfg := testConfig()
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)
	lvl.Reset()

	ps := lvl.Platforms()
	if len(ps) < cfg.Platforms.MaxCount {
		t.Fatalf("got %d platforms, want at least %d", len(ps), cfg.Platforms.MaxCount)
	}
	base := ps[0].Box()
	if base.X != cfg.World.Width/2-cfg.Platforms.Width/2 || ps[0].Variant != VariantNormal {
		t.Errorf("unexpected base platform %+v (%s)", base, ps[0].Variant)
	}
	if top := ps[len(ps)-1].Box().Y; top >= 0 {
		t.Errorf("topmost platform at %v, want above the view", top)
	}
	for i := 1; i < len(ps); i++ {
		if ps[i].Box().Y >= ps[i-1].Box().Y {
			t.Fatalf("platform %d is not above its predecessor", i)
		}
	}

	lvl.Update(-5000)
	lvl.Reset()
	if got := lvl.Platforms()[0].Box(); got != base {
		t.Errorf("Reset base = %+v, want %+v", got, base)
	}
}

func TestLevelUpdateEvictsAndRefills(t *testing.T) {
	cfg := testConfig()
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)
	lvl.Reset()

	camY := -1500.0
	lvl.Update(camY)
	ps := lvl.Platforms()
	for _, p := range ps {
		if p.Box().Y > camY+cfg.World.Height {
			t.Fatalf("platform at %v should have been evicted", p.Box().Y)
		}
	}
	if len(ps) < cfg.Platforms.MaxCount {
		t.Errorf("got %d platforms after refill, want at least %d", len(ps), cfg.Platforms.MaxCount)
	}
	if top := ps[len(ps)-1].Box().Y; top >= camY {
		t.Errorf("topmost platform at %v, want above %v", top, camY)
	}
}

func TestLevelHitRemovesBreakable(t *testing.T) {
	cfg := testConfig()
	lvl := NewLevel(cfg, rand.New(rand.NewSource(1)), nil)
	lvl.Reset()

	normal := lvl.Platforms()[0]
	breakable := &Platform{Entity: NewEntity(0, 100, 150, 10), Variant: VariantBreakable}
	lvl.platforms = append(lvl.platforms, breakable)

	if lvl.Hit(normal) {
		t.Error("Hit on a normal platform reported a break")
	}
	if !lvl.Hit(breakable) || !lvl.Hit(breakable) {
		t.Error("Hit on a breakable platform should report a break")
	}
	if len(lvl.pending) != 1 {
		t.Errorf("pending = %d, want 1", len(lvl.pending))
	}

	lvl.Update(0)
	for _, p := range lvl.Platforms() {
		if p == breakable {
			t.Fatal("breakable platform survived Update")
		}
	}
	if len(lvl.pending) != 0 {
		t.Error("pending removals not cleared")
	}
}
