package notify

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count=%d, want %d", h.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	t.Parallel()
	h := NewHub()
	defer h.Close()

	conn := dialHub(t, h)
	waitForClients(t, h, 1)

	want := Event{
		Kind:     "reload",
		Catalog:  "solarsys.ssc",
		Bodies:   42,
		Warnings: 1,
	}
	if err := h.Publish(context.Background(), want); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var got Event
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal %q: %v", payload, err)
	}
	if got.Kind != want.Kind || got.Catalog != want.Catalog || got.Bodies != want.Bodies {
		t.Errorf("got %+v, want kind/catalog/bodies from %+v", got, want)
	}
	if got.Warnings != 1 {
		t.Errorf("warnings=%d, want 1", got.Warnings)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not filled in")
	}
}

func TestPublishWithoutClients(t *testing.T) {
	t.Parallel()
	h := NewHub()
	defer h.Close()

	if err := h.Publish(context.Background(), Event{Kind: "reload"}); err != nil {
		t.Errorf("Publish with no clients: %v", err)
	}
}

func TestPublishCancelledContext(t *testing.T) {
	t.Parallel()
	h := NewHub()
	h.Close()

	// With the broadcaster stopped, fill the queue so Publish has to wait.
	for i := 0; i < cap(h.broadcast); i++ {
		h.broadcast <- Event{Kind: "reload"}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Publish(ctx, Event{Kind: "reload"}); err == nil {
		t.Error("expected error from cancelled context with full queue")
	}
}

func TestClientDisconnect(t *testing.T) {
	t.Parallel()
	h := NewHub()
	defer h.Close()

	conn := dialHub(t, h)
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()
	h := NewHub()
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
