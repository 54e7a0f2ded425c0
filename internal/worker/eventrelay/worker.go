package eventrelay

import (
	"context"
	"log/slog"
	"time"

	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/ieventrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/irelaycursorrepo"
	"github.com/rejot-dev/example-microservice/internal/service/models/event"
	"github.com/spf13/viper"
)

// publisher sends one event to the relay queue. Satisfied by the RabbitMQ
// event publisher repository.
type publisher interface {
	Publish(ctx context.Context, e event.Event) error
}

// Worker relays the mutation log to the broker for downstream consumers.
// It scans events past a persisted checkpoint in append order and advances
// the checkpoint only after a successful publish, so delivery is
// at-least-once: a crash between publish and checkpoint re-sends that
// event on the next run. Events are published strictly in id order.
type Worker struct {
	eventRepo    ieventrepo.IEventRepository
	cursorRepo   irelaycursorrepo.IRelayCursorRepository
	pub          publisher
	pollInterval time.Duration
	batchSize    int
	stopCh       chan struct{}
}

// NewWorker creates a new event relay worker.
func NewWorker(
	eventRepo ieventrepo.IEventRepository,
	cursorRepo irelaycursorrepo.IRelayCursorRepository,
	pub publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.relay.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 5
	}

	batchSize := viper.GetInt("rabbitmq.relay.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	return &Worker{
		eventRepo:    eventRepo,
		cursorRepo:   cursorRepo,
		pub:          pub,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		stopCh:       make(chan struct{}),
	}
}

// Start begins relaying events until the context is canceled or Stop is
// called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Event relay worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Event relay worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Event relay worker stopped")

			return
		case <-ticker.C:
			w.relayPending(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// relayPending publishes events appended since the checkpoint. On the first
// publish failure it stops and leaves the rest for the next tick, keeping
// the stream ordered.
func (w *Worker) relayPending(ctx context.Context) {
	cursor, err := w.cursorRepo.Get(ctx)
	if err != nil {
		slog.Error("Failed to read relay cursor", "error", err)

		return
	}

	events, err := w.eventRepo.ListAfter(ctx, cursor, w.batchSize)
	if err != nil {
		slog.Error("Failed to list events past cursor", "error", err, "cursor", cursor)

		return
	}

	if len(events) == 0 {
		return
	}

	slog.Info("Relaying events", "count", len(events), "cursor", cursor)

	for _, e := range events {
		if err := w.pub.Publish(ctx, e); err != nil {
			slog.Warn("Failed to publish event, will retry next tick",
				"event_id", e.ID,
				"error", err,
			)

			return
		}

		if err := w.cursorRepo.Set(ctx, e.ID); err != nil {
			slog.Error("Failed to advance relay cursor", "error", err, "event_id", e.ID)

			return
		}
	}
}
