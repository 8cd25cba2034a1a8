package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// MemorySink is a Handler that keeps captured events in memory. It is the
// backend used in tests and by programs that inspect their own events.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// Capture stores the event.
func (s *MemorySink) Capture(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// Events returns a copy of everything captured so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// FileSink appends events as JSON lines to a local file, one object per
// line. It performs no network I/O; shipping the file elsewhere is the
// operator's concern.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to path. The parent directory is
// created on first capture.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Capture appends the event to the sink file.
func (s *FileSink) Capture(ev Event) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating telemetry directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening telemetry file %s: %w", s.path, err)
	}
	defer f.Close()

	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding telemetry event: %w", err)
	}
	line = append(line, '\n')

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("writing telemetry event: %w", err)
	}
	return nil
}

// Discard is a Handler that drops every event. It backs recorders for
// users who opted out, keeping call sites unconditional.
type Discard struct{}

// Capture drops the event.
func (Discard) Capture(Event) error { return nil }
