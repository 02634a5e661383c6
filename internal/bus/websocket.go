package bus

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	maxMessage = 1 << 16
)

// WebSocket is a Bus client for a relay Hub.
type WebSocket struct {
	conn *websocket.Conn
	log  *log.Logger

	writeMu sync.Mutex

	mu        sync.Mutex
	subs      []*subscriber
	done      chan struct{}
	closeOnce sync.Once
}

// DialWebSocket connects to a hub at rawURL (ws:// or wss://) and joins
// topic.
func DialWebSocket(ctx context.Context, rawURL, topic string, logger *log.Logger) (*WebSocket, error) {
	if logger == nil {
		logger = log.Default()
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("bus: parse hub url %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("topic", topic)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: writeWait}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("bus: dial %s: %w", u.Redacted(), err)
	}

	w := &WebSocket{
		conn: conn,
		log:  logger,
		done: make(chan struct{}),
	}
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go w.readLoop()
	go w.pingLoop()
	return w, nil
}

func (w *WebSocket) readLoop() {
	defer w.Close() //nolint:errcheck // Close never fails
	for {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			select {
			case <-w.done:
			default:
				w.log.Warn("websocket read failed", "err", err)
			}
			return
		}
		w.mu.Lock()
		subs := append([]*subscriber(nil), w.subs...)
		w.mu.Unlock()
		for _, s := range subs {
			s.send(data)
		}
	}
}

func (w *WebSocket) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := w.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *WebSocket) write(messageType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(messageType, data)
}

// Publish implements Bus. The hub echoes the payload back to this client.
func (w *WebSocket) Publish(ctx context.Context, payload []byte) error {
	select {
	case <-w.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err := w.write(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("bus: websocket publish: %w", err)
	}
	return nil
}

// Subscribe implements Bus.
func (w *WebSocket) Subscribe(ctx context.Context) (<-chan []byte, error) {
	w.mu.Lock()
	select {
	case <-w.done:
		w.mu.Unlock()
		return nil, ErrClosed
	default:
	}
	s := &subscriber{
		ch:   make(chan []byte, DefaultBuffer),
		done: make(chan struct{}),
	}
	w.subs = append(w.subs, s)
	w.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-w.done:
		}
		s.close()
	}()
	return s.ch, nil
}

// Close implements Bus.
func (w *WebSocket) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = w.write(websocket.CloseMessage, msg)
		_ = w.conn.Close()
		w.mu.Lock()
		subs := w.subs
		w.subs = nil
		w.mu.Unlock()
		for _, s := range subs {
			s.close()
		}
	})
	return nil
}
