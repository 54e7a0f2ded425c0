package iaddressrepo

import (
	"context"

	"github.com/rejot-dev/example-microservice/internal/service/models/address"
)

// IAddressRepository is an interface for the address postgres repository.
type IAddressRepository interface {
	Insert(ctx context.Context, a address.Address) (address.Address, error)
	Get(ctx context.Context, id int64) (*address.Address, error)
}
