package audio

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/skyjump/internal/core"
)

func TestCueStreamsFinish(t *testing.T) {
	cues := []core.Cue{core.CueJump, core.CueBonus, core.CueBreak, core.CueDeath}
	for _, c := range cues {
		t.Run(c.String(), func(t *testing.T) {
			s := Streamer(c)
			if s == nil {
				t.Fatal("no streamer for cue")
			}

			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				for i := 0; i < n; i++ {
					for _, v := range buf[i] {
						if math.IsNaN(v) || math.Abs(v) > 1.0001 {
							t.Fatalf("sample %d out of range: %f", total+i, v)
						}
					}
				}
				total += n
				if !ok {
					break
				}
				if total > sampleRate.N(2*time.Second) {
					t.Fatal("cue never ends")
				}
			}
			if total == 0 {
				t.Error("cue produced no samples")
			}
		})
	}
}

func TestUnknownCue(t *testing.T) {
	if Streamer(core.Cue(99)) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

func TestPlayBeforeInitializeIsSilent(t *testing.T) {
	sm := NewSoundManager(0.5)
	sm.Play(core.CueJump) // must not panic or block
	sm.Cleanup()
}
