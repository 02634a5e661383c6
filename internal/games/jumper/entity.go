// Package jumper implements the vertical endless jumper: a player bouncing up
// an endless column of procedurally generated platforms.
package jumper

import "github.com/vovakirdan/skyjump/internal/core"

// Entity is a positioned box in world space. Its camera-space box is derived
// every frame and never stored.
type Entity struct {
	box core.Box
}

// NewEntity creates an entity at the given world position.
func NewEntity(x, y, w, h float64) Entity {
	return Entity{box: core.NewBox(x, y, w, h)}
}

// Box returns the entity's world-space box.
func (e *Entity) Box() core.Box {
	return e.box
}

// Drawable is anything the renderer can place relative to the camera.
type Drawable interface {
	Box() core.Box
	Glyph() (rune, core.Color)
}
