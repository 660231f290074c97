package stream

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/five82/poseview/internal/synth"
)

// DefaultDummyInterval is the send cadence of the dummy server.
const DefaultDummyInterval = 300 * time.Millisecond

// DummyServer streams a synthetic trajectory to every websocket client. Each
// connection gets its own generator.
type DummyServer struct {
	Interval     time.Duration
	NewGenerator func() *synth.Generator
	Logf         func(format string, args ...any)
}

func (d *DummyServer) logf(format string, args ...any) {
	if d.Logf != nil {
		d.Logf(format, args...)
	}
}

func (d *DummyServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		d.logf("accept %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Session-open requests are logged; everything else from the client is
	// ignored. A read error means the client went away.
	go func() {
		defer cancel()
		for {
			var req OpenRequest
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				return
			}
			d.logf("session open from %s: group=%q timestamp=%q", r.RemoteAddr, req.Group, req.Timestamp)
		}
	}()

	gen := d.NewGenerator()
	interval := d.Interval
	if interval <= 0 {
		interval = DefaultDummyInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logf("client connected: %s", r.RemoteAddr)
	for {
		if err := wsjson.Write(ctx, conn, gen.Next()); err != nil {
			d.logf("connection closed: %s", r.RemoteAddr)
			return
		}
		select {
		case <-ctx.Done():
			d.logf("connection closed: %s", r.RemoteAddr)
			return
		case <-ticker.C:
		}
	}
}
