package bus

import (
	"context"
	"sync"
)

// Broker is an in-process message broker. It is used by the SSH server so
// that players connected to the same host can race each other, and by tests.
// Thread-safe for concurrent access.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[*subscriber]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[*subscriber]struct{}),
	}
}

// Topic returns a Bus client bound to the named topic.
func (b *Broker) Topic(name string) *Memory {
	return &Memory{
		broker: b,
		topic:  name,
		done:   make(chan struct{}),
	}
}

// Subscribers returns the number of live subscriptions on a topic.
func (b *Broker) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func (b *Broker) register(topic string, s *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*subscriber]struct{})
		b.topics[topic] = subs
	}
	subs[s] = struct{}{}
}

func (b *Broker) unregister(topic string, s *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.topics[topic], s)
	if len(b.topics[topic]) == 0 {
		delete(b.topics, topic)
	}
}

func (b *Broker) broadcast(topic string, payload []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.topics[topic] {
		s.send(payload)
	}
}

// subscriber is a single buffered delivery queue.
type subscriber struct {
	ch       chan []byte
	done     chan struct{}
	doneOnce sync.Once
	mu       sync.Mutex
}

// send delivers without blocking. If the buffer is full the oldest payload
// is dropped.
func (s *subscriber) send(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return
	default:
	}

	msg := append([]byte(nil), payload...)
	select {
	case s.ch <- msg:
	default:
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- msg:
		default:
		}
	}
}

// close stops delivery and closes the channel exactly once.
func (s *subscriber) close() {
	s.doneOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		close(s.done)
		close(s.ch)
	})
}

// Memory is a Bus backed by a Broker.
type Memory struct {
	broker *Broker
	topic  string

	mu        sync.Mutex
	subs      []*subscriber
	done      chan struct{}
	closeOnce sync.Once
}

// Publish implements Bus.
func (m *Memory) Publish(ctx context.Context, payload []byte) error {
	select {
	case <-m.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	m.broker.broadcast(m.topic, payload)
	return nil
}

// Subscribe implements Bus.
func (m *Memory) Subscribe(ctx context.Context) (<-chan []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return nil, ErrClosed
	default:
	}

	s := &subscriber{
		ch:   make(chan []byte, DefaultBuffer),
		done: make(chan struct{}),
	}
	m.broker.register(m.topic, s)
	m.subs = append(m.subs, s)

	go func() {
		select {
		case <-ctx.Done():
		case <-m.done:
		}
		m.broker.unregister(m.topic, s)
		s.close()
	}()
	return s.ch, nil
}

// Close implements Bus.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		close(m.done)
		for _, s := range m.subs {
			m.broker.unregister(m.topic, s)
			s.close()
		}
		m.subs = nil
	})
	return nil
}
