package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyjump/internal/bus"
)

var (
	flagHubAddr string
	flagHubPath string
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Start a WebSocket relay hub",
	Long: `Start a WebSocket hub that relays messages between players on the
same topic. Use it when no MQTT broker is available.

Players connect with:
  skyjump play --relay --transport ws --broker ws://<host>:8080/relay

Examples:
  skyjump hub
  skyjump hub --listen :9000`,
	Args: cobra.NoArgs,
	RunE: runHub,
}

func init() {
	hubCmd.Flags().StringVar(&flagHubAddr, "listen", ":8080", "HTTP listen address (host:port)")
	hubCmd.Flags().StringVar(&flagHubPath, "path", "/relay", "WebSocket endpoint path")
}

func runHub(_ *cobra.Command, _ []string) error {
	logger, logCloser, err := newLogger("skyjump-hub", true)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	hub := bus.NewHub(logger)
	mux := http.NewServeMux()
	mux.Handle(flagHubPath, hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "ok clients=%d\n", hub.Clients())
	})

	srv := &http.Server{
		Addr:              flagHubAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting relay hub", "address", flagHubAddr, "path", flagHubPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
