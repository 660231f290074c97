// Package logtail reads the tail of poseview's log file for the log pane.
//
// # Overview
//
// poseview's TUI owns the terminal, so the standard logger writes to a file
// instead. The UI shows the end of that file on demand. This package reads
// the last N lines and splits each line into timestamp, message and an
// inferred severity; the UI applies the colors.
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries while scanning the file once:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines:
//	   - Return first 'count' entries from buffer
//	4. If total >= maxLines:
//	   - Return buffer starting from current index (oldest line)
//
// A non-positive maxLines returns the whole file.
//
// Example usage:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		log.Printf("failed to read log: %v", err)
//	}
//
// # Classification
//
// Lines follow the standard log package layout:
//
//	2025/10/08 21:01:05 skip gizmo for "pose-b": gizmo: sample has no orientation
//
// Parse strips the timestamp and Classify looks for keywords:
//
//   - error: panic, error, failed, disconnected
//   - warn: skip, rejected, closed by peer
//   - info: connected, provisioned, replayed, listening
//
// Error words win over warn words, so a skip caused by a panic is an error.
//
// # Error Handling
//
// Read returns nil, nil for non-existent files. Other errors (permission
// denied, I/O errors) are returned wrapped. Parse never fails; lines without
// a timestamp keep their full text as the message.
package logtail
