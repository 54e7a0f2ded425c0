package irelaycursorrepo

import "context"

// IRelayCursorRepository persists the id of the last event published to the
// broker, so the relay resumes where it left off after a restart.
type IRelayCursorRepository interface {
	Get(ctx context.Context) (int64, error)
	Set(ctx context.Context, lastEventID int64) error
}
