package ieventrepo

import (
	"context"

	"github.com/rejot-dev/example-microservice/internal/service/models/event"
)

// IEventRepository stores the append-only mutation log.
type IEventRepository interface {
	// Append inserts one event. When the repository is bound to a
	// transaction the append commits or rolls back together with the
	// entity write that produced it.
	Append(ctx context.Context, e event.Event) (event.Event, error)

	// List returns all events, most recently appended first. Downstream
	// consumers poll this and expect new items at the front.
	List(ctx context.Context) ([]event.Event, error)

	// ListAfter returns up to limit events with id greater than afterID,
	// in append order. Used by the relay worker's cursor scan.
	ListAfter(ctx context.Context, afterID int64, limit int) ([]event.Event, error)
}
