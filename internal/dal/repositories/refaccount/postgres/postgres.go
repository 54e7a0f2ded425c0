package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/service/models/refaccount"
)

// PostgresRefAccountRepository reads the destination_accounts table. The
// table is written only by the external replication process; a row for a
// just-created account may not be visible yet. Lookup reports plain
// found/not-found and leaves retry policy to the caller.
type PostgresRefAccountRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresRefAccountRepository creates a new destination accounts repository.
func NewPostgresRefAccountRepository(conn postgres.GenericConn) *PostgresRefAccountRepository {
	return &PostgresRefAccountRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Lookup reports whether an account id is present in the reference view.
func (r *PostgresRefAccountRepository) Lookup(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.
		Select("id").
		From("destination_accounts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var found int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("failed to look up destination account: %w", err)
	}

	return true, nil
}

// List returns all currently replicated destination accounts.
func (r *PostgresRefAccountRepository) List(ctx context.Context) ([]refaccount.DestinationAccount, error) {
	sql, args, err := r.sb.
		Select("id", "name", "created_at", "synced_at").
		From("destination_accounts").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query destination accounts: %w", err)
	}
	defer rows.Close()

	var result []refaccount.DestinationAccount
	for rows.Next() {
		var acc refaccount.DestinationAccount
		var createdAt, syncedAt pgtype.Timestamptz

		if err := rows.Scan(&acc.ID, &acc.Name, &createdAt, &syncedAt); err != nil {
			return nil, fmt.Errorf("failed to scan destination account: %w", err)
		}

		acc.CreatedAt = createdAt.Time
		acc.SyncedAt = syncedAt.Time

		result = append(result, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
