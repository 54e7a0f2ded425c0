package productsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iproductrepo"
	"github.com/rejot-dev/example-microservice/internal/service/models/apperrors"
	"github.com/rejot-dev/example-microservice/internal/service/models/product"
)

type fakeProductRepo struct {
	products []product.Product
	nextID   int64

	insertCalls int
}

func (r *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	r.insertCalls++
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *fakeProductRepo) Query(_ context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	var result []product.Product
	for _, p := range r.products {
		if len(filter.Ids) > 0 && !containsID(filter.Ids, p.ID) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type fakeUOW struct {
	repo *fakeProductRepo
}

func (u *fakeUOW) ProductRepository() iproductrepo.IProductRepository { return u.repo }

func newTestService() (*ProductService, *fakeProductRepo) {
	repo := &fakeProductRepo{nextID: 1}
	svc := MustNewProductService()
	svc.uowFactory = func() unitOfWork {
		return &fakeUOW{repo: repo}
	}
	return svc, repo
}

func TestCreateProductRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	description := "a product"
	id, err := svc.CreateProduct(context.Background(), "widget", &description, 999)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	got, err := svc.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != "widget" || got.PriceCents != 999 {
		t.Fatalf("unexpected product: %+v", got)
	}
	if got.Description == nil || *got.Description != "a product" {
		t.Fatalf("description = %v, want %q", got.Description, "a product")
	}
}

func TestCreateProductNilDescription(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.CreateProduct(context.Background(), "widget", nil, 100)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	got, err := svc.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Description != nil {
		t.Fatalf("description = %v, want nil", got.Description)
	}
}

func TestCreateProductValidation(t *testing.T) {
	cases := []struct {
		name        string
		productName string
		priceCents  int64
	}{
		{"empty name", "", 100},
		{"zero price", "widget", 0},
		{"negative price", "widget", -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newTestService()

			_, err := svc.CreateProduct(context.Background(), tc.productName, nil, tc.priceCents)

			var invalid *apperrors.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want InvalidArgumentError", err)
			}
			if repo.insertCalls != 0 {
				t.Fatal("insert called despite invalid input")
			}
		})
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetProduct(context.Background(), 42)

	var notFound *apperrors.ResourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want ResourceNotFoundError", err)
	}
	if notFound.Kind != apperrors.KindProduct || notFound.ID != 42 {
		t.Fatalf("unexpected error: %+v", notFound)
	}
}

func TestGetProductsEmptyIsNotNil(t *testing.T) {
	svc, _ := newTestService()

	products, err := svc.GetProducts(context.Background())
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if products == nil {
		t.Fatal("products is nil, want empty slice")
	}
	if len(products) != 0 {
		t.Fatalf("products = %d, want 0", len(products))
	}
}
