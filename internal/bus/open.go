package bus

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Transport names accepted by Dial.
const (
	TransportMQTT      = "mqtt"
	TransportWebSocket = "ws"
	TransportMemory    = "memory"
)

// DialOptions selects and configures a transport.
type DialOptions struct {
	Transport string
	// Broker is the MQTT broker URL or the hub's ws:// URL.
	Broker   string
	Topic    string
	ClientID string
	QoS      byte
	Timeout  time.Duration
	// Local serves the memory transport. A nil Local gets a private broker,
	// which only loops messages back to this process.
	Local  *Broker
	Logger *log.Logger
}

// Dial opens the transport named in opts.
func Dial(ctx context.Context, opts DialOptions) (Bus, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	switch opts.Transport {
	case TransportMQTT, "":
		return DialMQTT(MQTTOptions{
			Broker:   opts.Broker,
			Topic:    opts.Topic,
			ClientID: opts.ClientID,
			QoS:      opts.QoS,
			Timeout:  opts.Timeout,
			Logger:   opts.Logger,
		})
	case TransportWebSocket, "websocket":
		ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
		return DialWebSocket(ctx, opts.Broker, opts.Topic, opts.Logger)
	case TransportMemory:
		local := opts.Local
		if local == nil {
			local = NewBroker()
		}
		return local.Topic(opts.Topic), nil
	default:
		return nil, fmt.Errorf("bus: unknown transport %q", opts.Transport)
	}
}
