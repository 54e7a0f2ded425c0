package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/service/models/account"
)

// AccountDal represents the account data access layer model.
type AccountDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// ToModel converts AccountDal to the service layer Account model.
func (a *AccountDal) ToModel() *account.Account {
	return &account.Account{
		ID:        a.Id,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// PostgresAccountRepository represents a Postgres account repository.
type PostgresAccountRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresAccountRepository creates a new Postgres account repository.
func NewPostgresAccountRepository(conn postgres.GenericConn) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts one account and returns it with the generated id.
func (r *PostgresAccountRepository) Insert(ctx context.Context, a account.Account) (account.Account, error) {
	sql, args, err := r.sb.
		Insert("accounts").
		Columns("name", "email", "created_at").
		Values(a.Name, a.Email, a.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&a.ID); err != nil {
		return account.Account{}, fmt.Errorf("failed to insert account: %w", err)
	}

	return a, nil
}

// Query retrieves accounts based on filter criteria.
func (r *PostgresAccountRepository) Query(
	ctx context.Context,
	filter *account.QueryAccountsModel,
) ([]account.Account, error) {
	query := r.sb.
		Select("id", "name", "email", "created_at").
		From("accounts")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var result []account.Account
	for rows.Next() {
		var dal AccountDal
		var createdAt pgtype.Timestamptz

		if err := rows.Scan(&dal.Id, &dal.Name, &dal.Email, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}

		dal.CreatedAt = createdAt.Time

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
