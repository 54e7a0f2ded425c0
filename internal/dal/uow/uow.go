package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iaccountrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iaddressrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/ieventrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iorderitemrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iorderrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iproductrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/irefaccountrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	accountrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/account/postgres"
	addressrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/address/postgres"
	eventrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/event/postgres"
	orderrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/product/postgres"
	refaccountrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/refaccount/postgres"
)

// unitOfWork binds a set of repositories to one connection. After Begin,
// every repository runs on the same transaction, so an order and its items,
// or an entity and its event, commit or roll back as a pair.
type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo      iorderrepo.IOrderRepository
	orderItemRepo  iorderitemrepo.IOrderItemRepository
	productRepo    iproductrepo.IProductRepository
	refAccountRepo irefaccountrepo.IRefAccountRepository
	accountRepo    iaccountrepo.IAccountRepository
	addressRepo    iaddressrepo.IAddressRepository
	eventRepo      ieventrepo.IEventRepository
}

// NewUnitOfWork creates a unit of work with repositories bound to the pool.
// Read-only callers can use the repositories without Begin.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.GenericConn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.refAccountRepo = refaccountrepo.NewPostgresRefAccountRepository(conn)
	u.accountRepo = accountrepo.NewPostgresAccountRepository(conn)
	u.addressRepo = addressrepo.NewPostgresAddressRepository(conn)
	u.eventRepo = eventrepo.NewPostgresEventRepository(conn)
}

// Begin opens a transaction and rebinds all repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction, if one was begun.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls back the transaction. Safe to defer after Commit: a closed
// transaction is not an error.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}

	return nil
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) RefAccountRepository() irefaccountrepo.IRefAccountRepository {
	return u.refAccountRepo
}

func (u *unitOfWork) AccountRepository() iaccountrepo.IAccountRepository {
	return u.accountRepo
}

func (u *unitOfWork) AddressRepository() iaddressrepo.IAddressRepository {
	return u.addressRepo
}

func (u *unitOfWork) EventRepository() ieventrepo.IEventRepository {
	return u.eventRepo
}
