package bus

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Hub is a WebSocket relay server. Clients join a topic with ?topic=name and
// every text frame they send is broadcast to all clients on that topic,
// the sender included.
type Hub struct {
	broker   *Broker
	log      *log.Logger
	upgrader websocket.Upgrader
	clients  atomic.Int64
}

// NewHub creates a hub backed by its own broker.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		broker: NewBroker(),
		log:    logger,
		upgrader: websocket.Upgrader{
			// Game clients are not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.clients.Load())
}

// ServeHTTP upgrades the request and relays frames until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		http.Error(w, "missing topic", http.StatusBadRequest)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	h.clients.Add(1)
	defer h.clients.Add(-1)
	h.log.Info("client joined", "remote", r.RemoteAddr, "topic", topic)
	defer h.log.Info("client left", "remote", r.RemoteAddr, "topic", topic)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := h.broker.Topic(topic)
	defer client.Close() //nolint:errcheck // Close never fails
	inbound, err := client.Subscribe(ctx)
	if err != nil {
		return
	}

	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.writePump(ctx, cancel, conn, inbound)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("read failed", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := client.Publish(ctx, data); err != nil {
			return
		}
	}
}

// writePump is the only writer on conn.
func (h *Hub) writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, inbound <-chan []byte) {
	defer cancel()
	defer conn.Close() // unblocks the read loop
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case data, ok := <-inbound:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
