package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/poseview/internal/stream"
	"github.com/five82/poseview/internal/synth"
)

type serveDummyOptions struct {
	host     string
	port     int
	interval time.Duration
	group    string
	label    string
	offset   int64
}

func newServeDummyCmd() *cobra.Command {
	o := serveDummyOptions{}
	cmd := &cobra.Command{
		Use:   "serve-dummy",
		Short: "Serve a synthetic pose stream over websocket",
		Long: `Serve a synthetic trajectory to every websocket client that connects.

Each client gets its own sequence starting at 1. Session-open messages from
the client are logged and otherwise ignored. Any request path is accepted,
so the viewer's default URL works unchanged.

Examples:
  poseview serve-dummy
  poseview serve-dummy --port 9000 --interval 50ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServeDummy(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVar(&o.host, "host", "0.0.0.0", "listen host")
	cmd.Flags().IntVarP(&o.port, "port", "p", 8765, "listen port")
	cmd.Flags().DurationVar(&o.interval, "interval", stream.DefaultDummyInterval, "time between samples")
	cmd.Flags().StringVar(&o.group, "group", "session-123", "group written into each record")
	cmd.Flags().StringVar(&o.label, "label", "ARKit tracking pose", "label written into each record")
	cmd.Flags().Int64Var(&o.offset, "offset", 50, "sequence id placed at x = 0")
	return cmd
}

func runServeDummy(ctx context.Context, o serveDummyOptions) error {
	handler := &stream.DummyServer{
		Interval: o.interval,
		NewGenerator: func() *synth.Generator {
			return synth.New(o.group, "", o.label, o.offset)
		},
		Logf: log.Printf,
	}
	addr := net.JoinHostPort(o.host, strconv.Itoa(o.port))
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("dummy server listening on ws://%s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown dummy server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dummy server: %w", err)
	}
}
