// Package stream connects poseview to pose feeds.
//
// # Sources
//
// A Source performs one connection attempt and delivers decoded samples to
// a Sink until the connection ends:
//
//   - WebSocketSource dials a websocket URL, sends the session-open
//     OpenRequest once and decodes every text or binary message. A message
//     may hold one record or a JSON array of records.
//   - RedisStream polls a redis stream with XREAD, resuming after the last
//     entry id it has seen, and decodes flat field entries.
//
// Undecodable records go to Sink.Rejected and the stream continues.
// Reconnecting is the caller's job; see app.StartPump.
//
// # Tools
//
// RedisStream also appends records (Publish) and reads a window of raw
// entries (Dump) for the command line tools. DummyServer is an http.Handler
// that streams a synth.Generator trajectory to each websocket client.
package stream
