// Package telemetry provides a JSONL event stream for recording catalog
// load activity. Every load, per-file result, and rejected entry is recorded
// as a structured JSON event, making loads auditable and analyzable.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds identify the type of telemetry event.
const (
	KindSessionStart  = "session_start"
	KindLoadStart     = "load_start"
	KindLoadDone      = "load_done"
	KindEntryRejected = "entry_rejected"
	KindIndexWritten  = "index_written"
	KindWatchReload   = "watch_reload"
)

// Event represents a single telemetry record. Each event carries a
// timestamp, a kind tag, the session identifier, and optional context
// (the catalog file being loaded) along with arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	SessionID string    `json:"session,omitempty"`
	Catalog   string    `json:"catalog,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file, stamping each with the
// session identifier assigned at creation. It is safe for concurrent use by
// multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file    *os.File
	enc     *json.Encoder
	session string
	mu      sync.Mutex
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it
// does. A fresh session identifier is generated and recorded as the first
// event.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	e := &Emitter{
		file:    f,
		enc:     json.NewEncoder(f),
		session: uuid.NewString(),
	}
	if err := e.Emit(Event{Kind: KindSessionStart}); err != nil {
		f.Close()
		return nil, err
	}
	return e, nil
}

// SessionID returns the session identifier stamped onto every event, or the
// empty string for a nil Emitter.
func (e *Emitter) SessionID() string {
	if e == nil {
		return ""
	}
	return e.session
}

// Emit writes a single event to the JSONL file, filling in the timestamp
// and session identifier if unset. It is safe for concurrent use. Calling
// Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	if evt.SessionID == "" {
		evt.SessionID = e.session
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
