package irefaccountrepo

import (
	"context"

	"github.com/rejot-dev/example-microservice/internal/service/models/refaccount"
)

// IRefAccountRepository reads the destination_accounts reference view. The
// view is populated by the external replicator and may lag behind the
// accounts service; this repository never writes to it.
type IRefAccountRepository interface {
	Lookup(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]refaccount.DestinationAccount, error)
}
