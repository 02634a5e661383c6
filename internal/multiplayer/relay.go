package multiplayer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyjump/internal/bus"
)

// flushTimeout bounds how long Close waits for queued publishes.
const flushTimeout = 2 * time.Second

// Relay connects a Session to a bus. A transport goroutine decodes inbound
// payloads into a buffered inbox that the game loop drains once per tick
// with Poll; outbound messages go through a buffered outbox so publishing
// never blocks the loop. All Session access happens on the loop goroutine.
type Relay struct {
	session *Session
	bus     bus.Bus
	log     *log.Logger

	inbox  chan Envelope
	outbox chan []byte

	ctx       context.Context
	cancel    context.CancelFunc
	readDone  chan struct{}
	writeDone chan struct{}
	closeOnce sync.Once

	// mu orders publish against Close, which may run on another goroutine
	// when an SSH session drops.
	mu     sync.Mutex
	closed bool
}

// NewRelay subscribes to b and starts the transport goroutines. The relay
// owns b and closes it on Close.
func NewRelay(b bus.Bus, s *Session, logger *log.Logger) (*Relay, error) {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	inbound, err := b.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("multiplayer: subscribe: %w", err)
	}

	r := &Relay{
		session:   s,
		bus:       b,
		log:       logger.With("session", shortID(s.ID)),
		inbox:     make(chan Envelope, bus.DefaultBuffer),
		outbox:    make(chan []byte, bus.DefaultBuffer),
		ctx:       ctx,
		cancel:    cancel,
		readDone:  make(chan struct{}),
		writeDone: make(chan struct{}),
	}
	go r.readLoop(inbound)
	go r.writeLoop()
	return r, nil
}

// readLoop decodes payloads into the inbox, dropping bad ones.
func (r *Relay) readLoop(inbound <-chan []byte) {
	defer close(r.readDone)
	for raw := range inbound {
		env, err := Decode(raw)
		if err != nil {
			r.log.Warn("dropping message", "err", err)
			continue
		}
		select {
		case r.inbox <- env:
		default:
			// Inbox full, drop oldest
			select {
			case <-r.inbox:
			default:
			}
			select {
			case r.inbox <- env:
			default:
			}
			r.log.Warn("inbox full, dropped oldest message")
		}
	}
	select {
	case <-r.ctx.Done():
	default:
		r.log.Warn("transport disconnected")
	}
}

// writeLoop publishes queued payloads until the outbox is closed.
func (r *Relay) writeLoop() {
	defer close(r.writeDone)
	for payload := range r.outbox {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		err := r.bus.Publish(ctx, payload)
		cancel()
		if err != nil {
			r.log.Warn("publish failed", "payload", string(payload), "err", err)
		}
	}
}

// publish queues a message without blocking.
func (r *Relay) publish(m Message) {
	if m == nil {
		return
	}
	payload := Encode(r.session.ID, m)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.outbox <- payload:
		r.log.Debug("publish", "kind", m.Kind())
	default:
		r.log.Warn("outbox full, dropping message", "kind", m.Kind())
	}
}

// Start begins a new multiplayer session and announces it.
func (r *Relay) Start() {
	r.publish(r.session.Start())
	r.log.Info("looking for a partner")
}

// Leave returns to solo play.
func (r *Relay) Leave() {
	r.session.Leave()
}

// Poll drains every inbound message received since the last call, applies
// them to the session and advances the handshake timer by one tick.
func (r *Relay) Poll() []Event {
	var events []Event
	for drained := false; !drained; {
		select {
		case env := <-r.inbox:
			ev, reply := r.session.Handle(env)
			if ev == nil && reply == nil && env.Sender != r.session.ID {
				r.log.Debug("ignored message", "kind", env.Body.Kind(), "from", shortID(env.Sender))
			}
			r.publish(reply)
			if ev != nil {
				r.log.Info("session event", "event", fmt.Sprintf("%T", ev), "from", shortID(env.Sender))
				events = append(events, ev)
			}
		default:
			drained = true
		}
	}

	ev, msg := r.session.Tick()
	if msg != nil {
		r.log.Debug("re-announcing", "retry", r.session.Retries())
	}
	r.publish(msg)
	if ev != nil {
		r.log.Warn("no partner answered, playing solo")
		events = append(events, ev)
	}
	return events
}

// ReportDeath publishes the hand-over for the local death, once.
func (r *Relay) ReportDeath(score int, ability float64) {
	if m := r.session.ReportDeath(score, ability); m != nil {
		r.log.Info("reporting death", "score", score, "ability", ability)
		r.publish(m)
	}
}

// BeginRound re-arms the death report.
func (r *Relay) BeginRound() {
	r.session.BeginRound()
}

// Session returns a copy of the session state.
func (r *Relay) Session() Session {
	return *r.session
}

// Close flushes queued publishes and releases the bus.
func (r *Relay) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.outbox)
		r.mu.Unlock()
		select {
		case <-r.writeDone:
		case <-time.After(flushTimeout):
			r.log.Warn("gave up flushing outbox")
		}
		r.cancel()
		if cerr := r.bus.Close(); cerr != nil && !errors.Is(cerr, bus.ErrClosed) {
			err = fmt.Errorf("multiplayer: close bus: %w", cerr)
		}
		<-r.readDone
	})
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
