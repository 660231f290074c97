// Package app wires poseview together: configuration, logging, metrics, the
// session, a transport and the UI.
//
// # Startup
//
//  1. Load ~/.config/poseview/config.toml (or --config) and apply CLI overrides
//  2. Redirect the standard logger to the configured log file
//  3. Load UI prefs (theme, zoom)
//  4. Start the /metrics endpoint when metrics_addr is set
//  5. Build the scene and session; pre-register enabled config labels and
//     declare disabled ones
//  6. Start the pump for the websocket or redis source
//  7. Run the TUI until the user quits or the context is cancelled
//
// # Pump
//
// StartPump owns the transport goroutine. It runs the source, records
// connection state in state.Store, forwards decoded samples on a channel the
// UI drains, and reconnects when the source returns:
//
//	┌──────────┐  Run(ctx, sink)  ┌────────────┐  chan pose.Sample  ┌────────┐
//	│  Source  │ ───────────────▶ │  pumpSink  │ ─────────────────▶ │   UI   │
//	└──────────┘                  └─────┬──────┘                    └───┬────┘
//	                                    │ MarkConnected, RecordSample   │ OnSample
//	                                    ▼                               ▼
//	                              state.Store                    session.Session
//
// A clean close by the peer retries after the base interval. Errors back off
// exponentially:
//
//	failures=1: 2s
//	failures=2: 4s
//	failures=3: 8s
//	failures=4: 16s
//	failures=5+: 30s (capped)
//
// The output channel is closed when the pump stops, which the UI reports as
// the stream having ended.
//
// # Shutdown
//
// Cancelling the context stops the pump, the metrics server and the UI. The
// source is closed after the pump's context is cancelled and the logger is
// pointed back at stderr last.
package app
