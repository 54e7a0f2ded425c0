package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
)

// PostgresRelayCursorRepository persists the relay checkpoint. The table
// holds a single row seeded by the migration.
type PostgresRelayCursorRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresRelayCursorRepository creates a new relay cursor repository.
func NewPostgresRelayCursorRepository(conn postgres.GenericConn) *PostgresRelayCursorRepository {
	return &PostgresRelayCursorRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get returns the id of the last event published to the broker.
func (r *PostgresRelayCursorRepository) Get(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.
		Select("last_event_id").
		From("relay_cursor").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var lastEventID int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&lastEventID); err != nil {
		return 0, fmt.Errorf("failed to get relay cursor: %w", err)
	}

	return lastEventID, nil
}

// Set advances the checkpoint to the given event id.
func (r *PostgresRelayCursorRepository) Set(ctx context.Context, lastEventID int64) error {
	sql, args, err := r.sb.
		Update("relay_cursor").
		Set("last_event_id", lastEventID).
		Set("updated_at", time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to set relay cursor: %w", err)
	}

	return nil
}
