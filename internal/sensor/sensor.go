// Package sensor provides finger count sources for the float ability.
// Readings come from an external gesture pipeline; the game only cares
// whether enough fingers are raised.
package sensor

import (
	"context"
	"sync"
	"time"
)

// Sensor reports the number of raised fingers. ok is false when no
// reading is available. Implementations may block.
type Sensor interface {
	ReadFingerCount() (count int, ok bool)
}

// None is a sensor that never has a reading.
type None struct{}

// ReadFingerCount implements Sensor.
func (None) ReadFingerCount() (int, bool) { return 0, false }

// reading is a timestamped finger count.
type reading struct {
	count int
	at    time.Time
}

// latest holds the most recent reading and expires it after maxAge.
type latest struct {
	mu     sync.RWMutex
	r      reading
	valid  bool
	maxAge time.Duration
	now    func() time.Time
}

func (l *latest) store(count int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r = reading{count: count, at: l.now()}
	l.valid = true
}

func (l *latest) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.valid = false
}

func (l *latest) load() (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.valid {
		return 0, false
	}
	if l.maxAge > 0 && l.now().Sub(l.r.at) > l.maxAge {
		return 0, false
	}
	return l.r.count, true
}

// Cached polls a blocking sensor on its own goroutine and serves the most
// recent reading without blocking. Readings older than maxAge are treated
// as unavailable.
type Cached struct {
	src      Sensor
	interval time.Duration
	latest   latest

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewCached starts polling src every interval. A non-positive interval
// means 50ms.
func NewCached(src Sensor, interval, maxAge time.Duration) *Cached {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cached{
		src:      src,
		interval: interval,
		latest:   latest{maxAge: maxAge, now: time.Now},
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go c.run(ctx)
	return c
}

func (c *Cached) run(ctx context.Context) {
	defer close(c.done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		if count, ok := c.src.ReadFingerCount(); ok {
			c.latest.store(count)
		} else {
			c.latest.clear()
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ReadFingerCount implements Sensor. It never blocks.
func (c *Cached) ReadFingerCount() (int, bool) {
	return c.latest.load()
}

// Close stops polling and waits for the poller to exit.
func (c *Cached) Close() error {
	c.once.Do(func() {
		c.cancel()
		<-c.done
	})
	return nil
}
