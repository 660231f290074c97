package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level is the severity inferred from a log message.
type Level int

const (
	LevelPlain Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "plain"
	}
}

// Entry is one parsed log line.
type Entry struct {
	Time    string // empty when the line has no standard log prefix
	Message string
	Level   Level
}

var stdPrefix = regexp.MustCompile(`^(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?) (.*)$`)

var (
	errorWords = []string{"panic", "error", "failed", "disconnected"}
	warnWords  = []string{"skip", "rejected", "closed by peer"}
	infoWords  = []string{"connected", "provisioned", "replayed", "listening"}
)

// Parse splits a standard log line into its timestamp and message and
// classifies the message.
func Parse(line string) Entry {
	e := Entry{Message: line}
	if m := stdPrefix.FindStringSubmatch(line); m != nil {
		e.Time = m[1]
		e.Message = m[2]
	}
	e.Level = Classify(e.Message)
	return e
}

// Classify infers a level from keywords in msg.
func Classify(msg string) Level {
	lower := strings.ToLower(msg)
	switch {
	case containsAny(lower, errorWords):
		return LevelError
	case containsAny(lower, warnWords):
		return LevelWarn
	case containsAny(lower, infoWords):
		return LevelInfo
	default:
		return LevelPlain
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
