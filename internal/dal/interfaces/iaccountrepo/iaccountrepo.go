package iaccountrepo

import (
	"context"

	"github.com/rejot-dev/example-microservice/internal/service/models/account"
)

// IAccountRepository is an interface for the account postgres repository.
type IAccountRepository interface {
	Insert(ctx context.Context, a account.Account) (account.Account, error)
	Query(ctx context.Context, filter *account.QueryAccountsModel) ([]account.Account, error)
}
