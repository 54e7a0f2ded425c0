package productsvc

import (
	"context"
	"time"

	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iproductrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/dal/uow"
	"github.com/rejot-dev/example-microservice/internal/service/models/apperrors"
	"github.com/rejot-dev/example-microservice/internal/service/models/product"
)

// ProductService manages the product catalog. Products have no update or
// delete path; order history integrity relies on the catalog being
// append-only.
type ProductService struct {
	pgClient   *postgres.Client
	uowFactory func() unitOfWork
}

func (s *ProductService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}

	return uow.NewUnitOfWork(s.pgClient)
}

type unitOfWork interface {
	ProductRepository() iproductrepo.IProductRepository
}

// option is a function that configures the ProductService.
type option func(*ProductService)

// MustNewProductService creates a new ProductService.
func MustNewProductService(opts ...option) *ProductService {
	s := &ProductService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the ProductService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ProductService) {
		s.pgClient = pgClient
	}
}

// CreateProduct creates one product. Price is in minor currency units and
// must be positive; the check happens before any store access.
func (s *ProductService) CreateProduct(
	ctx context.Context,
	name string,
	description *string,
	priceCents int64,
) (int64, error) {
	if name == "" {
		return 0, apperrors.NewInvalidArgument("product name must not be empty")
	}
	if priceCents <= 0 {
		return 0, apperrors.NewInvalidArgument("product price must be positive")
	}

	inserted, err := s.newUOW().ProductRepository().Insert(ctx, product.Product{
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return 0, err
	}

	return inserted.ID, nil
}

// GetProduct retrieves one product by id.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	products, err := s.newUOW().ProductRepository().Query(ctx, &product.QueryProductsModel{
		Ids: []int64{id},
	})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.NewResourceNotFound(apperrors.KindProduct, id)
	}

	return &products[0], nil
}

// GetProducts retrieves all products.
func (s *ProductService) GetProducts(ctx context.Context) ([]product.Product, error) {
	products, err := s.newUOW().ProductRepository().Query(ctx, &product.QueryProductsModel{})
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []product.Product{}
	}

	return products, nil
}
