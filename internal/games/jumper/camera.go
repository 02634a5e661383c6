package jumper

import "github.com/vovakirdan/skyjump/internal/core"

// Camera tracks the player's ascent. Its offset only ever moves upward
// (more negative) until Reset.
type Camera struct {
	y      float64
	height float64
	lerp   float64
}

// NewCamera creates a camera for a view of the given height.
// lerp is the fraction of the remaining distance covered per update.
func NewCamera(height, lerp float64) *Camera {
	return &Camera{height: height, lerp: lerp}
}

// Y returns the vertical world-to-screen offset.
func (c *Camera) Y() float64 {
	return c.y
}

// Update moves the camera toward keeping the target centred vertically.
// Targets below the centre line never pull the camera down.
func (c *Camera) Update(target core.Box) {
	desired := target.Y + target.H/2 - c.height/2
	if desired < c.y {
		c.y += (desired - c.y) * c.lerp
	}
}

// Reset ties world and screen coordinates 1:1 again.
func (c *Camera) Reset() {
	c.y = 0
}

// ToScreen converts a world-space box into camera space.
func (c *Camera) ToScreen(b core.Box) core.Box {
	return b.Offset(0, -c.y)
}
