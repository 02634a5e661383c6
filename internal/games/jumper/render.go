package jumper

import (
	"fmt"

	"github.com/vovakirdan/skyjump/internal/core"
)

// hudRows is the number of screen rows reserved for the HUD.
const hudRows = 1

// Render draws the world scaled onto dst, then the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() <= hudRows {
		return
	}

	sx := float64(dst.Width()) / g.cfg.World.Width
	sy := float64(dst.Height()-hudRows) / g.cfg.World.Height

	for _, p := range g.level.Platforms() {
		g.draw(dst, p, sx, sy)
		if p.Bonus != nil {
			g.draw(dst, p.Bonus, sx, sy)
		}
	}
	if !g.player.Dead() {
		g.draw(dst, g.player, sx, sy)
	}

	g.drawHUD(dst)
	g.drawOverlay(dst)
}

// draw places a drawable in camera space. Anything scrolled off either
// edge is clipped by the screen.
func (g *Game) draw(dst *core.Screen, d Drawable, sx, sy float64) {
	r := g.cam.ToScreen(d.Box()).Scale(sx, sy)
	r.Y += hudRows
	if r.Bottom() <= hudRows {
		return
	}
	if r.Y < hudRows {
		r.H -= hudRows - r.Y
		r.Y = hudRows
	}
	glyph, color := d.Glyph()
	dst.DrawRect(r, glyph, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("%d m", g.score), core.ColorBrightYellow)

	abilityColor := core.ColorDefault
	if g.player.AbilityActive() {
		abilityColor = core.ColorRed
	}
	ability := fmt.Sprintf("ability %d", int(g.player.Ability()))
	dst.DrawTextColor(dst.Width()-len(ability)-1, 0, ability, abilityColor)

	if g.partnerID != "" {
		relay := fmt.Sprintf("relay leg %d", g.legs)
		dst.DrawTextCentered(0, relay, core.ColorGray)
	}
}

func (g *Game) drawOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch {
	case g.paused:
		dst.DrawTextCentered(mid, "PAUSED", core.ColorBrightWhite)
		dst.DrawTextCentered(mid+1, "Press P to resume", core.ColorGray)
	case g.phase == PhaseCountdown:
		secs := (g.countdown + countdownStep - 1) / countdownStep
		dst.DrawTextCentered(mid, fmt.Sprintf("%d", secs), core.ColorYellow)
		if g.initialScore > 0 {
			dst.DrawTextCentered(mid+1, fmt.Sprintf("Continue from %d m", g.initialScore), core.ColorGray)
		}
	case g.phase == PhaseWaiting:
		dst.DrawTextCentered(mid, g.status, core.ColorBrightWhite)
		if g.player.Dead() {
			dst.DrawTextCentered(mid+1, fmt.Sprintf("You reached %d m", g.score), core.ColorGray)
		}
	case g.phase == PhaseGameOver:
		dst.DrawTextCentered(mid, "GAME OVER", core.ColorRed)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("%d m  |  Enter or R to restart", g.score), core.ColorGray)
	}
}

// countdownStep is the number of ticks shown as one countdown digit.
const countdownStep = 30
