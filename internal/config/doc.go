// Package config loads poseview's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/poseview/config.toml
//  3. If the file doesn't exist, return Default()
//  4. If the file exists but keys are missing or blank, keep the defaults
//
// # TOML Format
//
//	source = "websocket"          # or "redis"
//	url = "ws://127.0.0.1:8765/ws/get/database"
//	group = "session-test"
//	session_timestamp = "12345"
//	redis_addr = "127.0.0.1:6379"
//	redis_stream = "my_stream"
//	redis_start_id = "0"          # "$" skips history
//	log_file = "~/.local/share/poseview/poseview.log"
//	metrics_addr = ""             # e.g. "127.0.0.1:9464"
//	redraw_ms = 100
//	point_interval = 5
//	point_scale = 1.0
//	default_renderables = ["trail", "points", "gizmo", "cones"]
//
//	[[labels]]
//	name = "Sample pose"
//	renderables = ["gizmo", "trail", "points"]
//
//	[[labels]]
//	name = "reference"
//	enabled = false               # catalogued, off until toggled
//
// Labels listed here are set up before the first sample arrives; names must
// be unique. Without any [[labels]] entry, "Sample pose" is preregistered
// with gizmo, trail and points. Labels that only appear on the stream get
// default_renderables.
//
// # Path Expansion
//
// log_file and the config path accept a leading ~ and relative paths; both
// are turned into absolute paths. ExpandPath exposes the same rules to
// callers that take paths from flags.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, wrapped as "parse config"
//   - A [[labels]] entry without a name
//   - Values rejected by Validate (unknown source, point_interval below 1)
//
// Missing config files are not an error; poseview runs against the local
// dummy server with no configuration at all.
package config
