package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/gigtags/internal/lint"
	"github.com/starford/gigtags/internal/models"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "note.linted", Data: map[string]string{"path": "a.md"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: note.linted") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"path":"a.md"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishLintEvent_ChangedThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// First event should trigger vault.changed.
	b.PublishLintEvent(lint.EventLinted, models.Report{Path: "a.md", Findings: []models.Finding{}})
	// Second event immediately should NOT trigger another vault.changed.
	b.PublishLintEvent(lint.EventRemoved, models.Report{Path: "b.md"})
	// Unknown kinds are ignored.
	b.PublishLintEvent("bogus", models.Report{Path: "c.md"})

	// Drain and count events.
	time.Sleep(50 * time.Millisecond)
	changedCount := 0
	var noteEvents []string
loop:
	for {
		select {
		case msg := <-ch:
			s := string(msg)
			if strings.Contains(s, "vault.changed") {
				changedCount++
			} else {
				noteEvents = append(noteEvents, s)
			}
		default:
			break loop
		}
	}

	if len(noteEvents) != 2 {
		t.Fatalf("note events = %d, want 2", len(noteEvents))
	}
	if !strings.Contains(noteEvents[0], "event: note.linted") || !strings.Contains(noteEvents[0], `"path":"a.md"`) {
		t.Errorf("unexpected linted event %q", noteEvents[0])
	}
	if !strings.Contains(noteEvents[1], "event: note.removed") || !strings.Contains(noteEvents[1], `"path":"b.md"`) {
		t.Errorf("unexpected removed event %q", noteEvents[1])
	}
	if changedCount != 1 {
		t.Errorf("vault.changed events = %d, want 1 (throttled)", changedCount)
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	// Start handler in background.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.Publish(Event{Type: "note.linted", Data: map[string]string{"path": "x.md"}})
	time.Sleep(50 * time.Millisecond)

	// Cancel context to disconnect.
	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: note.linted") {
		t.Errorf("handler output missing event: %q", body)
	}

	// Client should be cleaned up.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill buffer (capacity 64) and then one more should not block.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
	// If we reach here without deadlock, the test passes.
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Should be safe no-op after close.
	b.Publish(Event{Type: "note.linted", Data: map[string]string{"path": "x.md"}})
	b.PublishLintEvent(lint.EventLinted, models.Report{Path: "x.md"})
}
