package sensor

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyjump/internal/bus"
	"github.com/vovakirdan/skyjump/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the sensor described by cfg. The returned closer releases the
// device or connection. Any failure yields an error; callers are expected
// to fall back to None and keep the manual toggle.
func Open(cfg config.SensorConfig, clientID string, logger *log.Logger) (Sensor, io.Closer, error) {
	switch cfg.Source {
	case "", "none":
		return None{}, nopCloser{}, nil
	case "bus", "mqtt":
		b, err := bus.DialMQTT(bus.MQTTOptions{
			Broker:   cfg.Broker,
			Topic:    cfg.Topic,
			ClientID: clientID + "-sensor",
			QoS:      0,
			Timeout:  5 * time.Second,
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("sensor: %w", err)
		}
		src, err := NewBusSource(b, cfg.MaxAge, logger)
		if err != nil {
			b.Close() //nolint:errcheck // Already failing
			return nil, nil, fmt.Errorf("sensor: %w", err)
		}
		return src, src, nil
	default:
		return nil, nil, fmt.Errorf("sensor: unknown source %q", cfg.Source)
	}
}
