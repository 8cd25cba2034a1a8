package telemetry

import (
	"bufio"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestRecorder_BuffersUntilFlush(t *testing.T) {
	sink := &MemorySink{}
	rec := NewRecorder(sink, WithDistinctID("test"))

	rec.Started("root::apply")
	rec.Completed("root::apply")

	if got := len(sink.Events()); got != 0 {
		t.Fatalf("events before flush = %d, want 0", got)
	}

	rec.Flush()

	events := sink.Events()
	if len(events) != 2 {
		t.Fatalf("events after flush = %d, want 2", len(events))
	}
	if events[0].Name != EventStarted {
		t.Errorf("events[0].Name = %q, want %q", events[0].Name, EventStarted)
	}
	if events[1].Name != EventCompleted {
		t.Errorf("events[1].Name = %q, want %q", events[1].Name, EventCompleted)
	}
	if events[0].Properties["activity"] != "root::apply" {
		t.Errorf("activity = %v, want root::apply", events[0].Properties["activity"])
	}
}

func TestRecorder_FlushDrains(t *testing.T) {
	sink := &MemorySink{}
	rec := NewRecorder(sink, WithDistinctID("test"))

	rec.Started("x")
	rec.Flush()
	rec.Flush()

	if got := len(sink.Events()); got != 1 {
		t.Errorf("events = %d, want 1 (second flush must not resend)", got)
	}
}

func TestRecorder_FailedCarriesKind(t *testing.T) {
	sink := &MemorySink{}
	rec := NewRecorder(sink, WithDistinctID("test"))

	rec.Failed("root::apply", "hook_failure")
	rec.Flush()

	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Properties["error_kind"] != "hook_failure" {
		t.Errorf("error_kind = %v, want hook_failure", events[0].Properties["error_kind"])
	}
}

type failingHandler struct{}

func (failingHandler) Capture(Event) error { return errors.New("backend down") }

func TestRecorder_HandlerFailureIsSwallowed(t *testing.T) {
	rec := NewRecorder(failingHandler{}, WithDistinctID("test"))

	rec.Started("x")
	rec.Flush() // must not panic or surface the error
	rec.Close()
}

func TestWithVersion_Normalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"not-a-version", "not-a-version"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sink := &MemorySink{}
			rec := NewRecorder(sink, WithDistinctID("test"), WithVersion(tt.in))
			rec.Started("x")
			rec.Flush()

			events := sink.Events()
			if events[0].Properties["version"] != tt.want {
				t.Errorf("version = %v, want %q", events[0].Properties["version"], tt.want)
			}
		})
	}
}

func TestDistinctID_StableAndAnonymous(t *testing.T) {
	a := distinctID()
	b := distinctID()
	if a != b {
		t.Errorf("distinct id not stable: %q vs %q", a, b)
	}

	// The id must be a well-formed UUID derived from the HMAC, not any
	// direct encoding of the machine identity.
	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("distinct id %q is not a UUID: %v", a, err)
	}

	mid := machineID()
	mac := hmac.New(sha256.New, []byte(toolkitName))
	mac.Write([]byte(mid))
	want, err := uuid.FromBytes(mac.Sum(nil)[:16])
	if err != nil {
		t.Fatal(err)
	}
	if parsed != want {
		t.Errorf("distinct id = %q, want HMAC-derived %q", parsed, want)
	}

	unkeyed := sha256.Sum256([]byte(mid))
	if plain, err := uuid.FromBytes(unkeyed[:16]); err == nil && parsed == plain {
		t.Error("distinct id matches unkeyed hash of machine id")
	}
}

func TestFileSink_AppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry", "events.jsonl")
	sink := NewFileSink(path)
	rec := NewRecorder(sink, WithDistinctID("test"))

	rec.Started("root::apply")
	rec.Failed("root::apply", "cancelled")
	rec.Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening sink file: %v", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		events = append(events, ev)
	}

	if len(events) != 2 {
		t.Fatalf("lines = %d, want 2", len(events))
	}
	if events[0].DistinctID != "test" {
		t.Errorf("DistinctID = %q, want %q", events[0].DistinctID, "test")
	}
	if events[1].Properties["error_kind"] != "cancelled" {
		t.Errorf("error_kind = %v, want cancelled", events[1].Properties["error_kind"])
	}
}

func TestDiscard(t *testing.T) {
	rec := NewRecorder(Discard{}, WithDistinctID("test"))
	rec.Completed("x")
	rec.Close()
}
