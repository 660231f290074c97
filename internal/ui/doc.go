// Package ui is poseview's terminal front end, built on Bubble Tea.
//
// # Layout
//
//	┌ header: connection state, sample counters, zoom ───────────┐
//	│ 3D canvas (scene through the orbit camera) │ label toggles │
//	│                                            │               │
//	├ log pane (L) ──────────────────────────────────────────────┤
//	└ footer: short key help ────────────────────────────────────┘
//
// # Files
//
//   - app.go: Model, Update loop, header, Run
//   - camera.go: orbit camera and perspective projection
//   - canvas.go: character grid with a depth buffer, scene painter
//   - labels.go: toggle list over the session's labels
//   - logs.go: tail of the log file with level colors
//   - keys.go, help.go: bindings and the help overlay
//   - theme.go: Nightfox, Kanagawa and Slate palettes
//
// # Threading
//
// The session and scene are only touched from the Bubble Tea update loop.
// The transport goroutine hands samples over a channel; waitForSamples
// blocks for the first one and drains up to maxBatch more, and Update feeds
// them to Session.OnSample. Connection state comes from state.Store, which
// is safe to read from any goroutine.
//
// # Rendering
//
// Every View call builds a fresh canvas, draws the world axes and then every
// visible drawable in paint order. Trails are dotted polylines, point
// history is 'o', the gizmo body is 'O', gizmo axes and cones are stroked
// with a slope character and cones end in '*'. Cells keep the nearest
// write, so geometry behind other geometry stays hidden.
//
// # Camera
//
// The camera orbits the origin at a fixed distance. Yaw wraps, pitch stops
// short of the poles, zoom scales the focal length within prefs.MinZoom and
// prefs.MaxZoom. Theme and zoom are saved to the prefs file on theme change
// and on quit.
package ui
