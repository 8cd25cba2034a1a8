package telemetry

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

const toolkitName = "cascade"

// Event names follow the convention toolkit::kind so a backend can group
// them per toolkit.
const (
	EventStarted   = toolkitName + "::started"
	EventCompleted = toolkitName + "::completed"
	EventFailed    = toolkitName + "::failed"
)

// Event is a single telemetry record handed to a Handler.
type Event struct {
	Name       string         `json:"name"`
	DistinctID string         `json:"distinct_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Handler publishes events to a backend. Implementations must tolerate
// being called from a single-threaded sequential caller; Recorder does
// not invoke Capture concurrently.
type Handler interface {
	Capture(Event) error
}

// Recorder buffers events for a whole process run and hands them to its
// Handler on Flush. It is process-scoped state: create one at startup,
// pass it into walkers, and Close it at the end of the program.
//
// Recording is best-effort. Capture errors are swallowed and never reach
// the caller, so telemetry can never change a walk's outcome.
type Recorder struct {
	mu      sync.Mutex
	handler Handler
	id      string
	props   map[string]any
	buf     []Event
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithVersion attaches the program's version to every event. The value is
// normalized through semver parsing ("v1.2.3" and "1.2.3" report the
// same); an unparsable version is attached verbatim.
func WithVersion(v string) RecorderOption {
	return func(r *Recorder) {
		if sv, err := semver.NewVersion(v); err == nil {
			v = sv.String()
		}
		r.props["version"] = v
	}
}

// WithDistinctID overrides the machine-derived distinct id.
func WithDistinctID(id string) RecorderOption {
	return func(r *Recorder) { r.id = id }
}

// NewRecorder creates a Recorder publishing to h.
func NewRecorder(h Handler, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		handler: h,
		id:      distinctID(),
		props:   map[string]any{"$lib": "telemetry/go"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Started records the start of an invocation of the named activity.
func (r *Recorder) Started(activity string) {
	r.record(EventStarted, activity, nil)
}

// Completed records a successful invocation.
func (r *Recorder) Completed(activity string) {
	r.record(EventCompleted, activity, nil)
}

// Failed records a failed invocation along with the coarse error kind.
func (r *Recorder) Failed(activity, kind string) {
	r.record(EventFailed, activity, map[string]any{"error_kind": kind})
}

func (r *Recorder) record(name, activity string, extra map[string]any) {
	props := make(map[string]any, len(r.props)+len(extra)+2)
	for k, v := range r.props {
		props[k] = v
	}
	for k, v := range extra {
		props[k] = v
	}
	if activity != "" {
		props["activity"] = activity
		props["$screen_name"] = activity
	}

	r.mu.Lock()
	r.buf = append(r.buf, Event{
		Name:       name,
		DistinctID: r.id,
		Timestamp:  time.Now().UTC(),
		Properties: props,
	})
	r.mu.Unlock()
}

// Flush publishes all buffered events. Handler failures are dropped along
// with their events; flushing always drains the buffer.
func (r *Recorder) Flush() {
	r.mu.Lock()
	pending := r.buf
	r.buf = nil
	r.mu.Unlock()

	for _, ev := range pending {
		// Best effort only.
		_ = r.handler.Capture(ev)
	}
}

// Close flushes any remaining events. Call it once at program teardown.
func (r *Recorder) Close() {
	r.Flush()
}

// distinctID derives a stable, anonymous per-machine id: the machine
// identity is HMAC-hashed with the toolkit name as key before it ever
// leaves the struct, then formatted as a UUID.
func distinctID() string {
	mid := machineID()
	mac := hmac.New(sha256.New, []byte(toolkitName))
	mac.Write([]byte(mid))
	sum := mac.Sum(nil)

	id, err := uuid.FromBytes(sum[:16])
	if err != nil {
		return "unknown"
	}
	return id.String()
}

func machineID() string {
	for _, p := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
		if raw, err := os.ReadFile(p); err == nil {
			if id := strings.TrimSpace(string(raw)); id != "" {
				return id
			}
		}
	}
	if host, err := os.Hostname(); err == nil {
		return fmt.Sprintf("host:%s", host)
	}
	return "unknown"
}
