package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/service/models/event"
)

var eventColumns = []string{
	"id",
	"transaction_id",
	"operation_idx",
	"operation",
	"public_schema_name",
	"public_schema_major_version",
	"public_schema_minor_version",
	"object",
	"created_at",
	"manifest_slug",
}

// PostgresEventRepository stores the append-only mutation log. Rows are
// never updated or deleted here; compaction is an external concern.
type PostgresEventRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresEventRepository creates a new Postgres event repository.
func NewPostgresEventRepository(conn postgres.GenericConn) *PostgresEventRepository {
	return &PostgresEventRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Append inserts one event and returns it with the generated id. When bound
// to a transaction, a failed append rolls back the entity write that
// produced the event.
func (r *PostgresEventRepository) Append(ctx context.Context, e event.Event) (event.Event, error) {
	sql, args, err := r.sb.
		Insert("events").
		Columns(
			"transaction_id",
			"operation_idx",
			"operation",
			"public_schema_name",
			"public_schema_major_version",
			"public_schema_minor_version",
			"object",
			"created_at",
			"manifest_slug",
		).
		Values(
			e.TransactionID,
			e.OperationIdx,
			string(e.Operation),
			e.PublicSchemaName,
			e.PublicSchemaMajorVersion,
			e.PublicSchemaMinorVersion,
			[]byte(e.Object),
			e.CreatedAt,
			e.ManifestSlug,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		return event.Event{}, fmt.Errorf("failed to append event: %w", err)
	}

	return e, nil
}

// List returns all events, most recently appended first. The id sequence is
// the authoritative append order; created_at alone cannot break ties within
// one timestamp tick.
func (r *PostgresEventRepository) List(ctx context.Context) ([]event.Event, error) {
	query := r.sb.
		Select(eventColumns...).
		From("events").
		OrderBy("id DESC")

	return r.queryEvents(ctx, query)
}

// ListAfter returns up to limit events with id greater than afterID, oldest
// first. The relay worker uses this to scan past its checkpoint.
func (r *PostgresEventRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]event.Event, error) {
	query := r.sb.
		Select(eventColumns...).
		From("events").
		Where(sq.Gt{"id": afterID}).
		OrderBy("id ASC").
		Limit(uint64(limit))

	return r.queryEvents(ctx, query)
}

func (r *PostgresEventRepository) queryEvents(ctx context.Context, query sq.SelectBuilder) ([]event.Event, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var result []event.Event
	for rows.Next() {
		var e event.Event
		var operation string
		var object []byte
		var createdAt pgtype.Timestamptz

		err := rows.Scan(
			&e.ID,
			&e.TransactionID,
			&e.OperationIdx,
			&operation,
			&e.PublicSchemaName,
			&e.PublicSchemaMajorVersion,
			&e.PublicSchemaMinorVersion,
			&object,
			&createdAt,
			&e.ManifestSlug,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		e.Operation = event.Operation(operation)
		e.Object = object
		e.CreatedAt = createdAt.Time

		result = append(result, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
