package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %q: %v", path, err)
	}
	defer f.Close()

	var events []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if sc.Text() == "" {
			continue
		}
		var evt Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			t.Fatalf("invalid JSON line: %v\nline: %s", err, sc.Text())
		}
		events = append(events, evt)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scanner: %v", err)
	}
	return events
}

func TestNewEmitter_ErrorOnBadPath(t *testing.T) {
	t.Parallel()
	_, err := NewEmitter("/nonexistent/dir/events.jsonl")
	if err == nil {
		t.Fatal("expected error for bad path, got nil")
	}
	if !strings.Contains(err.Error(), "telemetry: open") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestEmit_WritesValidJSONL(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	if err := em.Emit(Event{Kind: KindLoadStart, Catalog: "solarsys.ssc"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := em.Emit(Event{Kind: KindLoadDone, Catalog: "solarsys.ssc", Data: map[string]any{"bodies": 9}}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events := readEvents(t, path)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Kind != KindSessionStart {
		t.Errorf("first event kind=%q, want %q", events[0].Kind, KindSessionStart)
	}
	if events[1].Kind != KindLoadStart || events[1].Catalog != "solarsys.ssc" {
		t.Errorf("second event=%+v, want %q for solarsys.ssc", events[1], KindLoadStart)
	}
	data, ok := events[2].Data.(map[string]any)
	if !ok {
		t.Fatalf("load_done data=%T, want map", events[2].Data)
	}
	if data["bodies"] != float64(9) {
		t.Errorf("load_done bodies=%v, want 9", data["bodies"])
	}

	session := events[0].SessionID
	if session == "" {
		t.Fatal("session id is empty")
	}
	for i, evt := range events {
		if evt.SessionID != session {
			t.Errorf("event %d: session=%q, want %q", i, evt.SessionID, session)
		}
		if evt.Timestamp.IsZero() {
			t.Errorf("event %d: zero timestamp", i)
		}
		if evt.Timestamp.After(time.Now().Add(time.Minute)) {
			t.Errorf("event %d: timestamp in the future: %v", i, evt.Timestamp)
		}
	}
}

func TestEmit_ConcurrentSafety(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "concurrent.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(idx int) {
			defer wg.Done()
			evt := Event{
				Kind:    KindEntryRejected,
				Catalog: "concurrent.ssc",
				Data:    map[string]any{"idx": idx},
			}
			if err := em.Emit(evt); err != nil {
				t.Errorf("Emit from goroutine %d: %v", idx, err)
			}
		}(i)
	}
	wg.Wait()

	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events := readEvents(t, path)
	if len(events) != n+1 {
		t.Fatalf("expected %d events, got %d", n+1, len(events))
	}
}

func TestEmit_AppendsWithFreshSession(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "append.jsonl")

	em1, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	first := em1.SessionID()
	em1.Close()

	em2, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	second := em2.SessionID()
	em2.Close()

	if first == second {
		t.Errorf("two sessions share id %q", first)
	}

	events := readEvents(t, path)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].SessionID != first || events[1].SessionID != second {
		t.Errorf("session ids=%q,%q, want %q,%q",
			events[0].SessionID, events[1].SessionID, first, second)
	}
}

func TestNilEmitter_NoOp(t *testing.T) {
	t.Parallel()
	var em *Emitter

	if err := em.Emit(Event{Kind: KindLoadStart}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if id := em.SessionID(); id != "" {
		t.Errorf("nil SessionID=%q, want empty", id)
	}
}

func TestEvent_OmitsEmptyFields(t *testing.T) {
	t.Parallel()
	evt := Event{
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Kind:      KindLoadStart,
	}
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, field := range []string{`"session"`, `"catalog"`, `"data"`} {
		if strings.Contains(s, field) {
			t.Errorf("expected %s to be omitted, got: %s", field, s)
		}
	}
}
