package jumper

import (
	"math"

	"github.com/vovakirdan/skyjump/internal/core"
)

// Landing summarises the collision response applied in one tick.
type Landing struct {
	Platforms int // plain platform contacts
	Bonuses   int // spring contacts
	Broken    int // breakable platforms queued for removal
	Force     float64
}

// Landed reports whether any response was applied.
func (l Landing) Landed() bool {
	return l.Platforms+l.Bonuses > 0
}

// ResolveCollisions lands a falling player on every overlapping platform.
// Each platform yields exactly one response: its spring if the player
// touches it, otherwise the platform itself. The outcome does not depend on
// platform order: the player snaps to the highest contact and a spring
// contact always sets the jump force.
func ResolveCollisions(p *Player, lvl *Level) Landing {
	var res Landing
	if p.velY <= p.cfg.Physics.FallThreshold {
		return res
	}

	top := math.Inf(1)
	springForce := 0.0
	for _, pl := range lvl.Platforms() {
		if pl.Bonus != nil && p.box.Intersects(pl.Bonus.box) {
			res.Bonuses++
			top = math.Min(top, pl.Bonus.box.Y)
			springForce = math.Max(springForce, pl.Bonus.Force)
			p.ability = math.Min(p.cfg.Ability.Max, p.ability+p.cfg.Bonus.AbilityGain)
			continue
		}
		if p.box.Intersects(pl.box) {
			res.Platforms++
			top = math.Min(top, pl.box.Y)
			if lvl.Hit(pl) {
				res.Broken++
			}
		}
	}
	if !res.Landed() {
		return res
	}

	res.Force = p.cfg.Physics.JumpForce
	if res.Bonuses > 0 {
		res.Force = springForce
		p.sound.Play(core.CueBonus)
	} else {
		p.sound.Play(core.CueJump)
	}
	if res.Broken > 0 {
		p.sound.Play(core.CueBreak)
	}
	p.jump(top, res.Force)
	return res
}
