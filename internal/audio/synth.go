package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sweep is a sine oscillator gliding linearly from one frequency to another.
type sweep struct {
	from, to float64
	phase    float64
	pos      int
	total    int
	rate     beep.SampleRate
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) *sweep {
	return &sweep{from: from, to: to, total: rate.N(d), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is a short burst of white noise from a deterministic LCG.
type noise struct {
	seed  uint32
	pos   int
	total int
}

func newNoise(d time.Duration, rate beep.SampleRate) *noise {
	return &noise{seed: 0x2545f491, total: rate.N(d)}
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		g.seed = g.seed*1103515245 + 12345
		val := float64(g.seed>>16)/32768.0 - 1
		samples[i][0] = val
		samples[i][1] = val
		g.pos++
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }

// decay shapes a stream with a linear attack and an exponential tail.
type decay struct {
	streamer beep.Streamer
	pos      int
	attack   int
	rate     float64 // per-sample decay constant
}

func newDecay(s beep.Streamer, attack time.Duration, halfLife time.Duration, rate beep.SampleRate) *decay {
	hl := float64(rate.N(halfLife))
	if hl <= 0 {
		hl = 1
	}
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		rate:     math.Ln2 / hl,
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-d.rate * float64(d.pos))
		if d.pos < d.attack {
			vol *= float64(d.pos) / float64(d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales a stream linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// jumpSound is a short upward chirp.
func jumpSound(rate beep.SampleRate) beep.Streamer {
	d := 120 * time.Millisecond
	return newDecay(newSweep(320, 640, d, rate), 5*time.Millisecond, 40*time.Millisecond, rate)
}

// bonusSound is a longer, brighter spring boing with an octave on top.
func bonusSound(rate beep.SampleRate) beep.Streamer {
	d := 300 * time.Millisecond
	return beep.Mix(
		withVolume(newDecay(newSweep(260, 1040, d, rate), 5*time.Millisecond, 90*time.Millisecond, rate), 0.7),
		withVolume(newDecay(newSweep(520, 2080, d, rate), 5*time.Millisecond, 60*time.Millisecond, rate), 0.3),
	)
}

// breakSound is a crack of filtered noise over a low thud.
func breakSound(rate beep.SampleRate) beep.Streamer {
	d := 200 * time.Millisecond
	return beep.Mix(
		withVolume(newDecay(newNoise(d, rate), time.Millisecond, 30*time.Millisecond, rate), 0.5),
		withVolume(newDecay(newSweep(110, 60, d, rate), time.Millisecond, 60*time.Millisecond, rate), 0.5),
	)
}

// deathSound is a long falling whistle.
func deathSound(rate beep.SampleRate) beep.Streamer {
	d := 900 * time.Millisecond
	return newDecay(newSweep(880, 110, d, rate), 10*time.Millisecond, 400*time.Millisecond, rate)
}
