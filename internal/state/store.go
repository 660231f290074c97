package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest connection state available to the UI.
type Snapshot struct {
	Source              string
	Connected           bool
	Samples             int64 // samples delivered since start
	Rejected            int64 // records that failed to decode
	LastSampleAt        time.Time
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive connection failures
}

// IsOffline returns true when the source has failed to connect repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates updates from the transport goroutine with UI reads.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// MarkConnected records a successful connection to source and clears the
// failure streak.
func (s *Store) MarkConnected(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Source = source
	s.snapshot.Connected = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// MarkDisconnected records the end of a connection. Counters are kept; a
// non-nil err counts as a failure.
func (s *Store) MarkDisconnected(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Connected = false
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
	}
}

// RecordSample counts one delivered sample.
func (s *Store) RecordSample(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Samples++
	s.snapshot.LastSampleAt = at
	s.snapshot.LastUpdated = at
}

// RecordRejected counts one undecodable record.
func (s *Store) RecordRejected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Rejected++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
