package goPortal

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caribevibes/goPortal/session"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

type captureSink struct {
	events chan AuditEvent
}

func newCaptureSink(buffer int) *captureSink {
	return &captureSink{events: make(chan AuditEvent, buffer)}
}

func (s *captureSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *captureSink) next(t *testing.T) AuditEvent {
	t.Helper()
	select {
	case event := <-s.events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
		return AuditEvent{}
	}
}

type gateSink struct {
	gate chan struct{}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func TestAuditDisabledEmitsNothing(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: false}, sink)
	if d != nil {
		t.Fatal("disabled audit must yield a nil dispatcher")
	}

	// Nil dispatcher is a safe no-op receiver.
	d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
	d.Close()

	if sink.count.Load() != 0 {
		t.Fatal("sink called while disabled")
	}
}

func TestAuditDeliversEvents(t *testing.T) {
	sink := newCaptureSink(8)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)
	defer d.Close()

	d.Emit(context.Background(), AuditEvent{
		EventType: auditEventLoginSuccess,
		UserID:    "7",
		Success:   true,
	})

	event := sink.next(t)
	if event.EventType != auditEventLoginSuccess || event.UserID != "7" || !event.Success {
		t.Fatalf("event = %+v", event)
	}
}

func TestAuditDropsUnderBackpressure(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// One event blocks inside the sink, one fills the buffer; the rest drop.
	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected drops under backpressure")
	}

	close(sink.gate)
	d.Close()
}

func TestAuditCloseDrains(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 16}, sink)

	const events = 10
	for i := 0; i < events; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
	}
	d.Close()

	if got := sink.count.Load(); got != events {
		t.Fatalf("sink saw %d events after Close, want %d", got, events)
	}
}

func TestAuditEmitAfterClose(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 4}, sink)

	d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
	d.Close()
	d.Close()

	delivered := sink.count.Load()
	d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})

	if got := sink.count.Load(); got != delivered {
		t.Fatalf("sink saw %d events after Close, want %d", got, delivered)
	}
}

func TestJSONWriterSink(t *testing.T) {
	var buf strings.Builder
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: auditEventRefreshFailure,
		Error:     "refresh rejected",
	})

	out := buf.String()
	if !strings.Contains(out, auditEventRefreshFailure) || !strings.Contains(out, "refresh rejected") {
		t.Fatalf("serialized event = %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("events must be newline-delimited")
	}
}

func TestLoginEmitsAuditTrail(t *testing.T) {
	backend := newAuthBackend(t)
	sink := newCaptureSink(16)

	cfg := DefaultConfig()
	cfg.API.BaseURL = backend.baseURL()

	client, err := New().
		WithConfig(cfg).
		WithStore(session.NewMemoryStore()).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	mustLogin(t, client)

	event := sink.next(t)
	if event.EventType != auditEventLoginSuccess {
		t.Fatalf("first event = %q, want login success", event.EventType)
	}
	if event.UserID != "7" {
		t.Fatalf("event user = %q", event.UserID)
	}
}
