// Package bus provides the publish/subscribe transports the relay race runs
// over. Every Bus is bound to a single topic and delivers each payload to
// every subscriber, the publisher included.
package bus

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed bus.
var ErrClosed = errors.New("bus: closed")

// Bus is a best-effort broadcast channel scoped to one topic.
type Bus interface {
	// Publish sends payload to every subscriber. It must not block on slow
	// subscribers.
	Publish(ctx context.Context, payload []byte) error
	// Subscribe returns a channel of inbound payloads. The channel is
	// closed when ctx ends or the bus is closed.
	Subscribe(ctx context.Context) (<-chan []byte, error)
	// Close releases the connection. Safe to call multiple times.
	Close() error
}

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 64
