package jumper

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
)

// Variant tags what a platform does when landed on.
type Variant int

const (
	VariantNormal    Variant = iota
	VariantBreakable         // removed on landing
	VariantSpring            // carries a Bonus
)

// String returns a human-readable name for the variant.
func (v Variant) String() string {
	switch v {
	case VariantNormal:
		return "normal"
	case VariantBreakable:
		return "breakable"
	case VariantSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Bonus is the spring attached to a spring platform.
type Bonus struct {
	Entity
	Force float64
}

// Glyph implements Drawable.
func (b *Bonus) Glyph() (rune, core.Color) {
	return '^', core.ColorBrightYellow
}

// Platform is a single ledge the player can land on.
type Platform struct {
	Entity
	Variant Variant
	Bonus   *Bonus // non-nil only for spring platforms
}

// Glyph implements Drawable.
func (p *Platform) Glyph() (rune, core.Color) {
	switch p.Variant {
	case VariantBreakable:
		return '░', core.ColorOrange
	case VariantSpring:
		return '▀', core.ColorCyan
	default:
		return '▀', core.ColorGreen
	}
}

// Level owns the live platforms. Slice order is spawn order.
type Level struct {
	cfg        config.JumperConfig
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	platforms []*Platform
	pending   []*Platform // breakables to drop on the next Update
	lastY     float64     // y of the most recently spawned platform

	score int
	ticks int
}

// NewLevel creates an empty level. Call Reset before use.
func NewLevel(cfg config.JumperConfig, rng *rand.Rand, difficulty *config.DifficultyManager) *Level {
	return &Level{
		cfg:        cfg,
		rng:        rng,
		difficulty: difficulty,
	}
}

// Platforms returns the live platforms in spawn order.
func (l *Level) Platforms() []*Platform {
	return l.platforms
}

// SetProgress feeds the current score and tick count to difficulty scaling.
func (l *Level) SetProgress(score, ticks int) {
	l.score = score
	l.ticks = ticks
}

// Reset discards all platforms and reseeds from the base platform under the
// player's start position.
func (l *Level) Reset() {
	w := l.cfg.World
	pc := l.cfg.Platforms
	base := &Platform{
		Entity:  NewEntity(w.Width/2-pc.Width/2, w.Height/2+w.Height/3, pc.Width, pc.Height),
		Variant: VariantNormal,
	}
	l.platforms = []*Platform{base}
	l.pending = l.pending[:0]
	l.lastY = base.box.Y
	l.fill(0)
}

// GenerateNext creates a platform strictly above aboveY. The vertical gap is
// drawn from the difficulty window inside [GapMin, GapMax] and x is uniform
// over the positions that keep the platform on screen.
func (l *Level) GenerateNext(aboveY float64) *Platform {
	pc := l.cfg.Platforms
	lo, hi := pc.GapMin, pc.GapMax
	if l.difficulty != nil {
		lo, hi = l.difficulty.GapWindow(pc.GapMin, pc.GapMax, l.score, l.ticks)
	}
	gap := lo + l.rng.Float64()*(hi-lo)
	x := l.rng.Float64() * (l.cfg.World.Width - pc.Width)

	p := &Platform{
		Entity:  NewEntity(x, aboveY-gap, pc.Width, pc.Height),
		Variant: VariantNormal,
	}

	breakable := pc.BreakableChance
	if l.difficulty != nil {
		breakable = l.difficulty.BreakableChance(breakable, l.score, l.ticks)
	}
	switch {
	case breakable > 0 && l.rng.Intn(breakable) == 0:
		p.Variant = VariantBreakable
	case pc.BonusChance > 0 && l.rng.Intn(pc.BonusChance) == 0:
		p.Variant = VariantSpring
		bc := l.cfg.Bonus
		p.Bonus = &Bonus{
			Entity: NewEntity(p.box.X+(pc.Width-bc.Width)/2, p.box.Y-bc.Height, bc.Width, bc.Height),
			Force:  bc.JumpForce,
		}
	}
	return p
}

// Hit notifies the level that the player landed on p. Breakable platforms
// are queued for removal and Hit reports true.
func (l *Level) Hit(p *Platform) bool {
	if p.Variant != VariantBreakable {
		return false
	}
	if !slices.Contains(l.pending, p) {
		l.pending = append(l.pending, p)
	}
	return true
}

// Update applies queued removals, evicts platforms that scrolled below the
// view and spawns replacements. Each call is exactly one batch.
func (l *Level) Update(cameraY float64) {
	bottom := cameraY + l.cfg.World.Height
	l.platforms = slices.DeleteFunc(l.platforms, func(p *Platform) bool {
		return slices.Contains(l.pending, p) || p.box.Y > bottom
	})
	l.pending = l.pending[:0]
	l.fill(cameraY)
}

// fill spawns platforms until the level holds MaxCount of them and the
// topmost one is above the top edge of the view.
func (l *Level) fill(cameraY float64) {
	limit := 2 * l.cfg.Platforms.MaxCount
	for spawned := 0; spawned < limit; spawned++ {
		if len(l.platforms) >= l.cfg.Platforms.MaxCount && l.lastY < cameraY {
			return
		}
		p := l.GenerateNext(l.lastY)
		l.platforms = append(l.platforms, p)
		l.lastY = p.box.Y
	}
}
