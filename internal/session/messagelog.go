package session

import "github.com/five82/poseview/internal/pose"

// MessageLog is the append-only record of every sample received in the
// session. It is unbounded.
type MessageLog struct {
	samples []pose.Sample
	counts  map[string]int
}

// NewMessageLog returns an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{counts: make(map[string]int)}
}

func (l *MessageLog) Append(s pose.Sample) {
	l.samples = append(l.samples, s)
	l.counts[s.Label]++
}

func (l *MessageLog) Len() int {
	return len(l.samples)
}

// CountLabel returns how many logged samples carry label.
func (l *MessageLog) CountLabel(label string) int {
	return l.counts[label]
}

// Each calls fn for every logged sample with label, oldest first. The log
// length is fixed before iterating.
func (l *MessageLog) Each(label string, fn func(pose.Sample)) {
	n := len(l.samples)
	for i := 0; i < n; i++ {
		if l.samples[i].Label == label {
			fn(l.samples[i])
		}
	}
}
