package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/service/models/address"
)

// AddressDal represents the address data access layer model.
type AddressDal struct {
	Id            int64     `db:"id"`
	AccountId     int64     `db:"account_id"`
	StreetAddress string    `db:"street_address"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	PostalCode    string    `db:"postal_code"`
	Country       string    `db:"country"`
	CreatedAt     time.Time `db:"created_at"`
}

// ToModel converts AddressDal to the service layer Address model.
func (a *AddressDal) ToModel() *address.Address {
	return &address.Address{
		ID:            a.Id,
		AccountID:     a.AccountId,
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		CreatedAt:     a.CreatedAt,
	}
}

// PostgresAddressRepository represents a Postgres address repository.
type PostgresAddressRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresAddressRepository creates a new Postgres address repository.
func NewPostgresAddressRepository(conn postgres.GenericConn) *PostgresAddressRepository {
	return &PostgresAddressRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts one address and returns it with the generated id.
func (r *PostgresAddressRepository) Insert(ctx context.Context, a address.Address) (address.Address, error) {
	sql, args, err := r.sb.
		Insert("addresses").
		Columns("account_id", "street_address", "city", "state", "postal_code", "country", "created_at").
		Values(a.AccountID, a.StreetAddress, a.City, a.State, a.PostalCode, a.Country, a.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return address.Address{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&a.ID); err != nil {
		return address.Address{}, fmt.Errorf("failed to insert address: %w", err)
	}

	return a, nil
}

// Get retrieves one address by id. Returns nil when the row is absent.
func (r *PostgresAddressRepository) Get(ctx context.Context, id int64) (*address.Address, error) {
	sql, args, err := r.sb.
		Select("id", "account_id", "street_address", "city", "state", "postal_code", "country", "created_at").
		From("addresses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal AddressDal
	var createdAt pgtype.Timestamptz

	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.AccountId,
		&dal.StreetAddress,
		&dal.City,
		&dal.State,
		&dal.PostalCode,
		&dal.Country,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	dal.CreatedAt = createdAt.Time

	return dal.ToModel(), nil
}
