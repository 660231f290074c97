// Package state provides thread-safe connection state for the poseview UI.
//
// # Overview
//
// The transport runs on its own goroutine while the UI renders from the
// bubbletea event loop. Store is the one place both sides meet: the stream
// pump writes connection events and sample counts, the UI reads snapshots
// for the status bar.
//
//	Producer (stream.Pump):          Consumer (UI):
//	┌──────────────────────┐        ┌──────────────────┐
//	│ MarkConnected()      │        │                  │
//	│ RecordSample()       │───────→│ store.Snapshot() │
//	│ MarkDisconnected()   │ (mutex)│      ↓           │
//	│ backoff, reconnect   │        │  status bar      │
//	└──────────────────────┘        └──────────────────┘
//
// Pose samples themselves never pass through the Store; they travel to the
// event loop over a channel.
//
// # Failure Semantics
//
// MarkDisconnected(err) with a non-nil error increments ConsecutiveFailures.
// MarkConnected resets the streak. IsOffline reports two or more failures in
// a row, which the UI renders as "offline" instead of "reconnecting".
//
// Sample and rejection counters survive disconnects; dispatch stops but
// nothing accumulated is cleared.
//
// # Zero Value
//
// The zero Store is ready to use:
//
//	var store state.Store
//	store.MarkConnected("websocket")
//	snap := store.Snapshot()
package state
