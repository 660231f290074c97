// Package session implements label-keyed dispatch of pose samples to
// renderables.
//
// # Overview
//
// A Session is the context object for one viewing session. It owns:
//
//   - Registry: active labels and their renderables, in dispatch order
//   - Catalog: a provisioning entry (color, factories) for every known label
//   - MessageLog: every sample received, in arrival order
//   - the per-label UI toggles
//
// Nothing in this package is global; two sessions never share state.
//
// # Dispatch
//
// OnSample always appends to the MessageLog first. Then:
//
//	label registered     → Ingest on every bound renderable, in order
//	label catalogued     → make sure its toggle exists, drop the sample
//	label never seen     → provision an entry from the template, create a toggle
//
// A sample for a brand-new label is not drawn. Drawing starts when the user
// enables the label.
//
// # Activation and Replay
//
// The first SetLabelVisible(label, true) for a catalogued label runs its
// factories, registers the whole set at once and replays the label's logged
// samples front to back. Later calls only flip visibility:
//
//	sess.SetLabelVisible("pose-a", true)  // instantiate + register + replay
//	sess.SetLabelVisible("pose-a", false) // hide
//	sess.SetLabelVisible("pose-a", true)  // show, no replay
//
// # Isolation
//
// Each Ingest call runs on its own: an error or a panic in one renderable is
// logged as a skip and counted, and dispatch continues with the next
// renderable, the next replayed sample and the next label. OnSample never
// returns an error.
//
// # Colors
//
// ColorFor derives a hue from an xxhash of the label, so a label keeps its
// color across runs.
//
// # Memory
//
// The MessageLog is never truncated. Its length is exported as the
// poseview_message_log_size gauge.
package session
