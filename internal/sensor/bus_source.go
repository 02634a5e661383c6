package sensor

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyjump/internal/bus"
)

// BusSource listens on a bus topic where an external gesture pipeline
// publishes finger counts. Reads never block; a reading expires after
// maxAge so a stalled pipeline reads as unavailable.
type BusSource struct {
	bus    bus.Bus
	log    *log.Logger
	latest latest

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewBusSource subscribes to b. The source owns b and closes it on Close.
func NewBusSource(b bus.Bus, maxAge time.Duration, logger *log.Logger) (*BusSource, error) {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	s := &BusSource{
		bus:    b,
		log:    logger,
		latest: latest{maxAge: maxAge, now: time.Now},
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(ch)
	return s, nil
}

func (s *BusSource) run(ch <-chan []byte) {
	defer close(s.done)
	for payload := range ch {
		n, err := ParsePayload(payload)
		if err != nil {
			s.log.Warn("dropping finger reading", "err", err)
			continue
		}
		s.latest.store(n)
	}
}

// ReadFingerCount implements Sensor.
func (s *BusSource) ReadFingerCount() (int, bool) {
	return s.latest.load()
}

// Close unsubscribes and releases the bus.
func (s *BusSource) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.bus.Close()
		<-s.done
	})
	return err
}
