// Package remote links a running game to a pub/sub broker: steering
// commands published by a remote controller are injected as key presses,
// and the running score is published for spectators.
package remote

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyjump/internal/bus"
	"github.com/vovakirdan/skyjump/internal/core"
)

// commandBuffer bounds the number of undrained commands.
const commandBuffer = 32

// ParseCommand maps a controller payload to an action. Payloads are
// case-insensitive command words.
func ParseCommand(payload []byte) (core.Action, bool) {
	switch strings.ToUpper(strings.TrimSpace(string(payload))) {
	case "LEFT":
		return core.ActionLeft, true
	case "RIGHT":
		return core.ActionRight, true
	case "ABILITY", "SPACE":
		return core.ActionAbility, true
	case "RESTART", "ENTER":
		return core.ActionConfirm, true
	}
	return core.ActionNone, false
}

// Controller injects remote steering commands into the game's input.
// Steering repeats keep a direction held; a direction is released after
// holdTicks without a repeat or when the opposite one arrives.
type Controller struct {
	bus   bus.Bus
	log   *log.Logger
	cmds  chan core.Action
	holds *core.HoldTracker

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewController subscribes to b. The controller owns b.
func NewController(b bus.Bus, holdTicks int, logger *log.Logger) (*Controller, error) {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	c := &Controller{
		bus:    b,
		log:    logger,
		cmds:   make(chan core.Action, commandBuffer),
		holds:  core.NewHoldTracker(holdTicks),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go c.run(ch)
	return c, nil
}

func (c *Controller) run(ch <-chan []byte) {
	defer close(c.done)
	for payload := range ch {
		a, ok := ParseCommand(payload)
		if !ok {
			c.log.Debug("ignoring remote command", "payload", string(payload))
			continue
		}
		select {
		case c.cmds <- a:
		default:
			c.log.Warn("remote command queue full, dropping", "action", a)
		}
	}
}

// Apply drains pending commands into f and releases expired holds. It must
// be called once per tick from the game loop.
func (c *Controller) Apply(f *core.InputFrame) {
	c.holds.Tick(f)
	for {
		select {
		case a := <-c.cmds:
			c.holds.Steer(a, f)
		default:
			return
		}
	}
}

// Close unsubscribes and releases the bus.
func (c *Controller) Close() error {
	var err error
	c.once.Do(func() {
		c.cancel()
		err = c.bus.Close()
		<-c.done
	})
	return err
}

// ScoreFeed publishes the running score whenever it changes. Publishing
// never blocks the caller; only the newest score is kept while a publish
// is in flight.
type ScoreFeed struct {
	bus     bus.Bus
	log     *log.Logger
	timeout time.Duration

	last    int
	pending chan int

	done chan struct{}
	once sync.Once
}

// NewScoreFeed starts publishing to b. The feed owns b.
func NewScoreFeed(b bus.Bus, logger *log.Logger) *ScoreFeed {
	if logger == nil {
		logger = log.Default()
	}
	f := &ScoreFeed{
		bus:     b,
		log:     logger,
		timeout: 2 * time.Second,
		last:    -1,
		pending: make(chan int, 1),
		done:    make(chan struct{}),
	}
	go f.run()
	return f
}

func (f *ScoreFeed) run() {
	defer close(f.done)
	for score := range f.pending {
		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		if err := f.bus.Publish(ctx, []byte(strconv.Itoa(score))); err != nil {
			f.log.Warn("score publish failed", "err", err)
		}
		cancel()
	}
}

// Update queues score for publishing if it differs from the last one. It
// must not be called after Close.
func (f *ScoreFeed) Update(score int) {
	if score == f.last {
		return
	}
	f.last = score
	for {
		select {
		case f.pending <- score:
			return
		default:
		}
		select {
		case <-f.pending:
		default:
		}
	}
}

// Close flushes the pending score and releases the bus.
func (f *ScoreFeed) Close() error {
	var err error
	f.once.Do(func() {
		close(f.pending)
		<-f.done
		err = f.bus.Close()
	})
	return err
}
