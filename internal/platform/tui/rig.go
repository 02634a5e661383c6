package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyjump/internal/bus"
	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
	"github.com/vovakirdan/skyjump/internal/games/jumper"
	"github.com/vovakirdan/skyjump/internal/multiplayer"
	"github.com/vovakirdan/skyjump/internal/remote"
	"github.com/vovakirdan/skyjump/internal/sensor"
)

// RigOptions selects the collaborators of one run.
type RigOptions struct {
	Config   config.JumperConfig
	TickRate int
	// Relay joins a relay race over Config.Multiplayer.
	Relay bool
	// Local serves the memory transport, shared by every SSH session.
	Local *bus.Broker
	// Sound defaults to silence.
	Sound core.SoundPlayer
	// NoDevices skips the finger sensor and the remote link. Used for SSH
	// sessions, which must not share the host's devices.
	NoDevices bool
	Logger    *log.Logger
}

// Rig holds everything a run talks to besides the terminal: the finger
// sensor, sound, the relay race session and the remote control link.
// Close releases all of it.
type Rig struct {
	SessionID string
	Sensor    jumper.FingerSensor
	Sound     core.SoundPlayer
	Relay     *multiplayer.Relay
	Remote    *remote.Controller
	Scores    *remote.ScoreFeed

	closers []io.Closer
	log     *log.Logger
}

// NewRig opens the collaborators described by opts. Only a failing relay
// transport is an error; a missing sensor or remote link is logged and the
// run continues without it.
func NewRig(ctx context.Context, opts RigOptions) (*Rig, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	r := &Rig{
		SessionID: multiplayer.NewSessionID(),
		Sensor:    sensor.None{},
		Sound:     opts.Sound,
		log:       logger,
	}
	if r.Sound == nil {
		r.Sound = core.NopSound{}
	}
	cfg := opts.Config

	if !opts.NoDevices {
		r.openSensor(cfg.Sensor)
		if cfg.Remote.Enabled {
			r.openRemote(ctx, cfg.Remote)
		}
	}

	if opts.Relay {
		if err := r.openRelay(ctx, cfg, opts); err != nil {
			r.Close() //nolint:errcheck // Already failing
			return nil, err
		}
	}
	return r, nil
}

func (r *Rig) openSensor(cfg config.SensorConfig) {
	src, closer, err := sensor.Open(cfg, r.SessionID, r.log)
	if err != nil {
		r.log.Warn("finger sensor unavailable, using the manual toggle", "err", err)
		return
	}
	r.closers = append(r.closers, closer)
	if _, none := src.(sensor.None); none {
		return
	}
	cached := sensor.NewCached(src, cfg.PollInterval, cfg.MaxAge)
	r.closers = append(r.closers, cached)
	r.Sensor = cached
}

func (r *Rig) openRemote(ctx context.Context, cfg config.RemoteConfig) {
	dial := func(topic, suffix string) (bus.Bus, error) {
		return bus.Dial(ctx, bus.DialOptions{
			Transport: bus.TransportMQTT,
			Broker:    cfg.Broker,
			Topic:     topic,
			ClientID:  r.SessionID + suffix,
			Logger:    r.log,
		})
	}

	control, err := dial(cfg.ControlTopic, "-control")
	if err != nil {
		r.log.Warn("remote control unavailable", "err", err)
		return
	}
	ctrl, err := remote.NewController(control, cfg.HoldTicks, r.log)
	if err != nil {
		control.Close() //nolint:errcheck // Already failing
		r.log.Warn("remote control unavailable", "err", err)
		return
	}
	r.Remote = ctrl
	r.closers = append(r.closers, ctrl)

	scores, err := dial(cfg.ScoreTopic, "-scores")
	if err != nil {
		r.log.Warn("score feed unavailable", "err", err)
		return
	}
	r.Scores = remote.NewScoreFeed(scores, r.log)
	r.closers = append(r.closers, r.Scores)
}

func (r *Rig) openRelay(ctx context.Context, cfg config.JumperConfig, opts RigOptions) error {
	mc := cfg.Multiplayer
	b, err := bus.Dial(ctx, bus.DialOptions{
		Transport: mc.Transport,
		Broker:    mc.Broker,
		Topic:     mc.Topic,
		ClientID:  r.SessionID,
		QoS:       mc.QoS,
		Local:     opts.Local,
		Logger:    r.log,
	})
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}

	session := multiplayer.NewSession(r.SessionID, multiplayer.SessionOptions{
		RetryEvery:     ticksFor(mc.RetryInterval, opts.TickRate),
		MaxRetries:     mc.MaxRetries,
		InitialAbility: cfg.Ability.Max,
	})
	relay, err := multiplayer.NewRelay(b, session, r.log)
	if err != nil {
		b.Close() //nolint:errcheck // Already failing
		return fmt.Errorf("relay: %w", err)
	}
	r.Relay = relay
	r.closers = append(r.closers, relay)
	return nil
}

// Coordinator returns the relay race driver for jumper.Options, or nil
// for solo play.
func (r *Rig) Coordinator() jumper.Coordinator {
	if r.Relay == nil {
		return nil
	}
	return r.Relay
}

// Close releases every collaborator, newest first. Safe to call twice.
func (r *Rig) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
