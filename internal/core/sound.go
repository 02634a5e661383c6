package core

// Cue identifies a sound effect requested by the simulation.
type Cue int

const (
	CueJump  Cue = iota // landing on a plain platform
	CueBonus            // landing on a spring
	CueBreak            // a breakable platform gives way
	CueDeath            // the player fell out of view
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueBonus:
		return "bonus"
	case CueBreak:
		return "break"
	case CueDeath:
		return "death"
	default:
		return "unknown"
	}
}

// SoundPlayer plays cues without blocking the simulation.
type SoundPlayer interface {
	Play(c Cue)
}

// NopSound discards every cue.
type NopSound struct{}

// Play implements SoundPlayer.
func (NopSound) Play(Cue) {}
