package accountsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iaccountrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iaddressrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/ieventrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/dal/uow"
	"github.com/rejot-dev/example-microservice/internal/service/models/account"
	"github.com/rejot-dev/example-microservice/internal/service/models/address"
	"github.com/rejot-dev/example-microservice/internal/service/models/apperrors"
	"github.com/rejot-dev/example-microservice/internal/service/models/event"
)

// AccountService owns accounts and addresses. Every create also appends one
// event to the mutation log in the same transaction, so a reader can never
// observe the entity without its event or the event without its entity.
type AccountService struct {
	pgClient   *postgres.Client
	uowFactory func() unitOfWork
}

func (s *AccountService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}

	return uow.NewUnitOfWork(s.pgClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	AccountRepository() iaccountrepo.IAccountRepository
	AddressRepository() iaddressrepo.IAddressRepository
	EventRepository() ieventrepo.IEventRepository
}

// option is a function that configures the AccountService.
type option func(*AccountService)

// MustNewAccountService creates a new AccountService.
func MustNewAccountService(opts ...option) *AccountService {
	s := &AccountService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the AccountService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *AccountService) {
		s.pgClient = pgClient
	}
}

// accountProjection is the public shape of an account carried in events.
// Email is deliberately withheld from the projection.
type accountProjection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// addressProjection is the public shape of an address carried in events:
// a derived display label, not the raw address fields.
type addressProjection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateAccount creates one account and appends its INSERT event in the
// same transaction.
func (s *AccountService) CreateAccount(ctx context.Context, name, email string) (int64, error) {
	if name == "" {
		return 0, apperrors.NewInvalidArgument("account name must not be empty")
	}
	if email == "" {
		return 0, apperrors.NewInvalidArgument("account email must not be empty")
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	now := time.Now()

	inserted, err := work.AccountRepository().Insert(ctx, account.Account{
		Name:      name,
		Email:     email,
		CreatedAt: now,
	})
	if err != nil {
		return 0, err
	}

	object, err := json.Marshal(accountProjection{ID: inserted.ID, Name: inserted.Name})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal account projection: %w", err)
	}

	if _, err := work.EventRepository().Append(ctx, newInsertEvent(event.SchemaAccounts, object, now)); err != nil {
		return 0, err
	}

	if err := work.Commit(ctx); err != nil {
		return 0, err
	}

	return inserted.ID, nil
}

// CreateAddress creates one address and appends its INSERT event in the
// same transaction.
func (s *AccountService) CreateAddress(
	ctx context.Context,
	accountID int64,
	streetAddress, city, state, postalCode, country string,
) (int64, error) {
	if streetAddress == "" || city == "" {
		return 0, apperrors.NewInvalidArgument("street address and city must not be empty")
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	now := time.Now()

	inserted, err := work.AddressRepository().Insert(ctx, address.Address{
		AccountID:     accountID,
		StreetAddress: streetAddress,
		City:          city,
		State:         state,
		PostalCode:    postalCode,
		Country:       country,
		CreatedAt:     now,
	})
	if err != nil {
		return 0, err
	}

	object, err := json.Marshal(addressProjection{ID: inserted.ID, Name: inserted.DisplayLabel()})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal address projection: %w", err)
	}

	if _, err := work.EventRepository().Append(ctx, newInsertEvent(event.SchemaAddresses, object, now)); err != nil {
		return 0, err
	}

	if err := work.Commit(ctx); err != nil {
		return 0, err
	}

	return inserted.ID, nil
}

// GetAccount retrieves one account by id.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	accounts, err := s.newUOW().AccountRepository().Query(ctx, &account.QueryAccountsModel{
		Ids: []int64{id},
	})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.NewResourceNotFound(apperrors.KindAccount, id)
	}

	return &accounts[0], nil
}

// GetAccounts retrieves all accounts.
func (s *AccountService) GetAccounts(ctx context.Context) ([]account.Account, error) {
	accounts, err := s.newUOW().AccountRepository().Query(ctx, &account.QueryAccountsModel{})
	if err != nil {
		return nil, err
	}

	if accounts == nil {
		accounts = []account.Account{}
	}

	return accounts, nil
}

// GetAddress retrieves one address by id.
func (s *AccountService) GetAddress(ctx context.Context, id int64) (*address.Address, error) {
	addr, err := s.newUOW().AddressRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, apperrors.NewResourceNotFound(apperrors.KindAddress, id)
	}

	return addr, nil
}

// GetEvents returns the mutation log, most recently appended first.
func (s *AccountService) GetEvents(ctx context.Context) ([]event.Event, error) {
	events, err := s.newUOW().EventRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	if events == nil {
		events = []event.Event{}
	}

	return events, nil
}

// newInsertEvent builds the log record for a single-write transaction. The
// transaction id is a fresh uuid; with one write per transaction the
// operation index is always zero.
func newInsertEvent(schemaName string, object json.RawMessage, createdAt time.Time) event.Event {
	return event.Event{
		TransactionID:            uuid.NewString(),
		OperationIdx:             0,
		Operation:                event.OperationInsert,
		PublicSchemaName:         schemaName,
		PublicSchemaMajorVersion: event.SchemaMajorVersion,
		PublicSchemaMinorVersion: event.SchemaMinorVersion,
		Object:                   object,
		CreatedAt:                createdAt,
		ManifestSlug:             schemaName,
	}
}
