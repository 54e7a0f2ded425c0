package eventrelay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rejot-dev/example-microservice/internal/service/models/event"
)

type fakeEventRepo struct {
	events []event.Event
}

func (r *fakeEventRepo) Append(_ context.Context, e event.Event) (event.Event, error) {
	return e, errors.New("not used")
}

func (r *fakeEventRepo) List(_ context.Context) ([]event.Event, error) {
	return nil, errors.New("not used")
}

func (r *fakeEventRepo) ListAfter(_ context.Context, afterID int64, limit int) ([]event.Event, error) {
	var result []event.Event
	for _, e := range r.events {
		if e.ID > afterID {
			result = append(result, e)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

type fakeCursorRepo struct {
	cursor int64
}

func (r *fakeCursorRepo) Get(context.Context) (int64, error) { return r.cursor, nil }

func (r *fakeCursorRepo) Set(_ context.Context, lastEventID int64) error {
	r.cursor = lastEventID
	return nil
}

type fakePublisher struct {
	published []event.Event
	failAfter int
}

func (p *fakePublisher) Publish(_ context.Context, e event.Event) error {
	if p.failAfter > 0 && len(p.published) >= p.failAfter {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, e)
	return nil
}

func testEvent(id int64, schemaName string) event.Event {
	return event.Event{
		ID:               id,
		TransactionID:    "tx",
		Operation:        event.OperationInsert,
		PublicSchemaName: schemaName,
		CreatedAt:        time.Now(),
		ManifestSlug:     schemaName,
	}
}

func newTestWorker(events *fakeEventRepo, cursor *fakeCursorRepo, pub *fakePublisher) *Worker {
	return &Worker{
		eventRepo:    events,
		cursorRepo:   cursor,
		pub:          pub,
		pollInterval: time.Second,
		batchSize:    100,
		stopCh:       make(chan struct{}),
	}
}

func TestRelayPendingPublishesInOrder(t *testing.T) {
	events := &fakeEventRepo{events: []event.Event{
		testEvent(1, event.SchemaAccounts),
		testEvent(2, event.SchemaAddresses),
		testEvent(3, event.SchemaAccounts),
	}}
	cursor := &fakeCursorRepo{}
	pub := &fakePublisher{}

	w := newTestWorker(events, cursor, pub)
	w.relayPending(context.Background())

	if len(pub.published) != 3 {
		t.Fatalf("published = %d, want 3", len(pub.published))
	}
	for i, e := range pub.published {
		if e.ID != int64(i+1) {
			t.Fatalf("published out of order: %d at position %d", e.ID, i)
		}
	}

	if cursor.cursor != 3 {
		t.Fatalf("cursor = %d, want 3", cursor.cursor)
	}
}

func TestRelayPendingResumesFromCursor(t *testing.T) {
	events := &fakeEventRepo{events: []event.Event{
		testEvent(1, event.SchemaAccounts),
		testEvent(2, event.SchemaAccounts),
		testEvent(3, event.SchemaAddresses),
	}}
	cursor := &fakeCursorRepo{cursor: 2}
	pub := &fakePublisher{}

	w := newTestWorker(events, cursor, pub)
	w.relayPending(context.Background())

	if len(pub.published) != 1 {
		t.Fatalf("published = %d, want 1", len(pub.published))
	}
	if pub.published[0].ID != 3 {
		t.Fatalf("published id = %d, want 3", pub.published[0].ID)
	}
	if cursor.cursor != 3 {
		t.Fatalf("cursor = %d, want 3", cursor.cursor)
	}
}

func TestRelayPendingStopsAtPublishFailure(t *testing.T) {
	events := &fakeEventRepo{events: []event.Event{
		testEvent(1, event.SchemaAccounts),
		testEvent(2, event.SchemaAccounts),
		testEvent(3, event.SchemaAccounts),
	}}
	cursor := &fakeCursorRepo{}
	pub := &fakePublisher{failAfter: 2}

	w := newTestWorker(events, cursor, pub)
	w.relayPending(context.Background())

	if len(pub.published) != 2 {
		t.Fatalf("published = %d, want 2", len(pub.published))
	}
	// Cursor stays at the last event that made it out, so the failed
	// event is retried on the next tick.
	if cursor.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", cursor.cursor)
	}

	pub.failAfter = 0
	w.relayPending(context.Background())

	if len(pub.published) != 3 {
		t.Fatalf("published after retry = %d, want 3", len(pub.published))
	}
	if cursor.cursor != 3 {
		t.Fatalf("cursor after retry = %d, want 3", cursor.cursor)
	}
}

func TestRelayPendingRespectsBatchSize(t *testing.T) {
	events := &fakeEventRepo{}
	for id := int64(1); id <= 10; id++ {
		events.events = append(events.events, testEvent(id, event.SchemaAccounts))
	}
	cursor := &fakeCursorRepo{}
	pub := &fakePublisher{}

	w := newTestWorker(events, cursor, pub)
	w.batchSize = 4
	w.relayPending(context.Background())

	if len(pub.published) != 4 {
		t.Fatalf("published = %d, want 4", len(pub.published))
	}
	if cursor.cursor != 4 {
		t.Fatalf("cursor = %d, want 4", cursor.cursor)
	}

	// The next tick picks up where the batch ended.
	w.relayPending(context.Background())
	if cursor.cursor != 8 {
		t.Fatalf("cursor after second tick = %d, want 8", cursor.cursor)
	}
}
