package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTOptions configures an MQTT-backed bus.
type MQTTOptions struct {
	Broker   string // e.g. tcp://mqtt.eclipseprojects.io:1883
	Topic    string
	ClientID string
	QoS      byte
	Timeout  time.Duration // connect timeout
	Logger   *log.Logger
}

// MQTT is a Bus over an MQTT broker. The connection reconnects on its own
// and resubscribes after every reconnect.
type MQTT struct {
	client mqtt.Client
	topic  string
	qos    byte
	log    *log.Logger

	mu        sync.Mutex
	subs      []*subscriber
	done      chan struct{}
	closeOnce sync.Once
}

// DialMQTT connects to the broker.
func DialMQTT(opts MQTTOptions) (*MQTT, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := &MQTT{
		topic: opts.Topic,
		qos:   opts.QoS,
		log:   opts.Logger,
		done:  make(chan struct{}),
	}

	co := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.Timeout).
		SetCleanSession(true)
	co.SetOnConnectHandler(func(c mqtt.Client) {
		m.log.Debug("mqtt connected", "broker", opts.Broker)
		if err := m.subscribeBroker(c); err != nil {
			m.log.Warn("mqtt resubscribe failed", "err", err)
		}
	})
	co.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		m.log.Warn("mqtt connection lost", "err", err)
	})

	m.client = mqtt.NewClient(co)
	tok := m.client.Connect()
	if !tok.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("bus: mqtt connect %s: timed out after %s", opts.Broker, opts.Timeout)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("bus: mqtt connect %s: %w", opts.Broker, err)
	}
	return m, nil
}

// subscribeBroker registers the topic handler with the broker. Inbound
// payloads fan out to every local subscriber.
func (m *MQTT) subscribeBroker(c mqtt.Client) error {
	tok := c.Subscribe(m.topic, m.qos, func(_ mqtt.Client, msg mqtt.Message) {
		m.mu.Lock()
		subs := append([]*subscriber(nil), m.subs...)
		m.mu.Unlock()
		for _, s := range subs {
			s.send(msg.Payload())
		}
	})
	select {
	case <-tok.Done():
		return tok.Error()
	case <-m.done:
		return ErrClosed
	}
}

// Publish implements Bus.
func (m *MQTT) Publish(ctx context.Context, payload []byte) error {
	select {
	case <-m.done:
		return ErrClosed
	default:
	}
	tok := m.client.Publish(m.topic, m.qos, false, payload)
	select {
	case <-tok.Done():
		if err := tok.Error(); err != nil {
			return fmt.Errorf("bus: mqtt publish: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe implements Bus.
func (m *MQTT) Subscribe(ctx context.Context) (<-chan []byte, error) {
	m.mu.Lock()
	select {
	case <-m.done:
		m.mu.Unlock()
		return nil, ErrClosed
	default:
	}
	s := &subscriber{
		ch:   make(chan []byte, DefaultBuffer),
		done: make(chan struct{}),
	}
	m.subs = append(m.subs, s)
	m.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-m.done:
		}
		m.removeSub(s)
		s.close()
	}()
	return s.ch, nil
}

func (m *MQTT) removeSub(s *subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subs {
		if sub == s {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return
		}
	}
}

// Close implements Bus. Pending publishes get a short grace period.
func (m *MQTT) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
		m.client.Unsubscribe(m.topic).WaitTimeout(time.Second)
		m.client.Disconnect(250)
		m.mu.Lock()
		subs := m.subs
		m.subs = nil
		m.mu.Unlock()
		for _, s := range subs {
			s.close()
		}
	})
	return nil
}
