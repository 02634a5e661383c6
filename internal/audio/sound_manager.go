// Package audio plays the game's sound effects. Every cue is synthesized at
// play time, so there are no assets to load.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyjump/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes cues onto the system speaker. It implements
// core.SoundPlayer.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager at the given volume (0.0 to 1.0).
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. Call once before Play.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play implements core.SoundPlayer. It never blocks on playback.
func (sm *SoundManager) Play(c core.Cue) {
	s := Streamer(c)
	if s == nil {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(withVolume(s, sm.volume))
	speaker.Unlock()
}

// Cleanup silences everything still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.initialized = false
}

// Streamer returns a fresh stream for a cue, or nil for unknown cues.
func Streamer(c core.Cue) beep.Streamer {
	switch c {
	case core.CueJump:
		return jumpSound(sampleRate)
	case core.CueBonus:
		return bonusSound(sampleRate)
	case core.CueBreak:
		return breakSound(sampleRate)
	case core.CueDeath:
		return deathSound(sampleRate)
	default:
		return nil
	}
}
