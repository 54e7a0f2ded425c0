package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iorderitemrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iorderrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iproductrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/irefaccountrepo"
	"github.com/rejot-dev/example-microservice/internal/service/models/apperrors"
	"github.com/rejot-dev/example-microservice/internal/service/models/order"
	"github.com/rejot-dev/example-microservice/internal/service/models/orderitem"
	"github.com/rejot-dev/example-microservice/internal/service/models/product"
	"github.com/rejot-dev/example-microservice/internal/service/models/refaccount"
)

// memStore holds committed rows shared across unit-of-work instances.
type memStore struct {
	orders      []order.Order
	items       []orderitem.OrderItem
	products    []product.Product
	refAccounts map[int64]refaccount.DestinationAccount

	nextOrderID int64
	nextItemID  int64
}

func newMemStore() *memStore {
	return &memStore{
		refAccounts: map[int64]refaccount.DestinationAccount{},
		nextOrderID: 1,
		nextItemID:  1,
	}
}

func (m *memStore) addProduct(id int64, priceCents int64) {
	m.products = append(m.products, product.Product{ID: id, Name: "p", PriceCents: priceCents})
}

func (m *memStore) addRefAccount(id int64) {
	m.refAccounts[id] = refaccount.DestinationAccount{ID: id, Name: "acc"}
}

// fakeUOW stages inserts and merges them into the store on Commit,
// discarding them on Rollback, mirroring transaction visibility.
type fakeUOW struct {
	store *memStore

	stagedOrders []order.Order
	stagedItems  []orderitem.OrderItem

	began      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUOW) Begin(context.Context) error { u.began = true; return nil }

func (u *fakeUOW) Commit(context.Context) error {
	u.committed = true
	u.store.orders = append(u.store.orders, u.stagedOrders...)
	u.store.items = append(u.store.items, u.stagedItems...)
	u.stagedOrders = nil
	u.stagedItems = nil
	return nil
}

func (u *fakeUOW) Rollback(context.Context) error {
	if !u.committed {
		u.rolledBack = true
		u.stagedOrders = nil
		u.stagedItems = nil
	}
	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository { return &fakeOrderRepo{u} }

func (u *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return &fakeItemRepo{u}
}

func (u *fakeUOW) ProductRepository() iproductrepo.IProductRepository { return &fakeProductRepo{u} }

func (u *fakeUOW) RefAccountRepository() irefaccountrepo.IRefAccountRepository {
	return &fakeRefRepo{u}
}

type fakeOrderRepo struct{ u *fakeUOW }

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	o.ID = r.u.store.nextOrderID
	r.u.store.nextOrderID++
	r.u.stagedOrders = append(r.u.stagedOrders, o)
	return o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.u.store.orders {
		if len(filter.Ids) > 0 && !containsID(filter.Ids, o.ID) {
			continue
		}
		o.Items = []orderitem.OrderItem{}
		result = append(result, o)
	}
	return result, nil
}

type fakeItemRepo struct{ u *fakeUOW }

func (r *fakeItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	inserted := make([]orderitem.OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = r.u.store.nextItemID
		r.u.store.nextItemID++
		r.u.stagedItems = append(r.u.stagedItems, item)
		inserted = append(inserted, item)
	}
	return inserted, nil
}

func (r *fakeItemRepo) Query(_ context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, item := range r.u.store.items {
		if len(filter.OrderIds) > 0 && !containsID(filter.OrderIds, item.OrderID) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

type fakeProductRepo struct{ u *fakeUOW }

func (r *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	return p, errors.New("not used")
}

func (r *fakeProductRepo) Query(_ context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	var result []product.Product
	for _, p := range r.u.store.products {
		if len(filter.Ids) > 0 && !containsID(filter.Ids, p.ID) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

type fakeRefRepo struct{ u *fakeUOW }

func (r *fakeRefRepo) Lookup(_ context.Context, id int64) (bool, error) {
	_, ok := r.u.store.refAccounts[id]
	return ok, nil
}

func (r *fakeRefRepo) List(context.Context) ([]refaccount.DestinationAccount, error) {
	var result []refaccount.DestinationAccount
	for _, acc := range r.u.store.refAccounts {
		result = append(result, acc)
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

func newTestService(store *memStore) (*OrderService, *fakeUOW) {
	last := &fakeUOW{store: store}
	svc := MustNewOrderService()
	svc.uowFactory = func() unitOfWork {
		*last = fakeUOW{store: store}
		return last
	}
	return svc, last
}

func TestCreateOrderComputesTotalFromSnapshot(t *testing.T) {
	store := newMemStore()
	store.addRefAccount(1)
	store.addProduct(10, 999)
	svc, _ := newTestService(store)

	id, err := svc.CreateOrder(context.Background(), 1, []orderitem.NewItem{
		{ProductID: 10, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	got, err := svc.GetOrder(context.Background(), id)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.TotalPriceCents != 1998 {
		t.Fatalf("total = %d, want 1998", got.TotalPriceCents)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	item := got.Items[0]
	if item.PriceAtTimeOfOrder != 999 || item.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}

	// Round-trip invariant: the stored total equals the sum recomputed
	// from the order's own items.
	var sum int64
	for _, it := range got.Items {
		sum += it.PriceAtTimeOfOrder * int64(it.Quantity)
	}
	if sum != got.TotalPriceCents {
		t.Fatalf("sum of items = %d, total = %d", sum, got.TotalPriceCents)
	}
}

func TestCreateOrderSnapshotSurvivesPriceChange(t *testing.T) {
	store := newMemStore()
	store.addRefAccount(1)
	store.addProduct(10, 500)
	svc, _ := newTestService(store)

	id, err := svc.CreateOrder(context.Background(), 1, []orderitem.NewItem{
		{ProductID: 10, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// A hypothetical later price change must not affect committed orders.
	store.products[0].PriceCents = 9000

	got, err := svc.GetOrder(context.Background(), id)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.TotalPriceCents != 1500 {
		t.Fatalf("total = %d, want 1500", got.TotalPriceCents)
	}
	if got.Items[0].PriceAtTimeOfOrder != 500 {
		t.Fatalf("snapshot price = %d, want 500", got.Items[0].PriceAtTimeOfOrder)
	}
}

func TestCreateOrderMissingAccountLeavesNoRows(t *testing.T) {
	store := newMemStore()
	store.addProduct(10, 100)
	svc, last := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), 42, []orderitem.NewItem{
		{ProductID: 10, Quantity: 1},
	})

	var refErr *apperrors.ReferenceNotFoundError
	if !errors.As(err, &refErr) {
		t.Fatalf("err = %v, want ReferenceNotFoundError", err)
	}
	if refErr.Kind != apperrors.KindAccount {
		t.Fatalf("kind = %s, want Account", refErr.Kind)
	}
	if len(store.orders) != 0 || len(store.items) != 0 {
		t.Fatalf("rows committed after failed create: %d orders, %d items",
			len(store.orders), len(store.items))
	}
	if !last.rolledBack {
		t.Fatal("transaction not rolled back")
	}
}

func TestCreateOrderReportsAllMissingProducts(t *testing.T) {
	store := newMemStore()
	store.addRefAccount(1)
	store.addProduct(1, 100)
	svc, _ := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), 1, []orderitem.NewItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 2, Quantity: 3},
		{ProductID: 3, Quantity: 1},
	})

	var refErr *apperrors.ReferenceNotFoundError
	if !errors.As(err, &refErr) {
		t.Fatalf("err = %v, want ReferenceNotFoundError", err)
	}
	if refErr.Kind != apperrors.KindProducts {
		t.Fatalf("kind = %s, want Products", refErr.Kind)
	}
	if len(refErr.IDs) != 2 || refErr.IDs[0] != 2 || refErr.IDs[1] != 3 {
		t.Fatalf("missing ids = %v, want [2 3]", refErr.IDs)
	}
	if len(store.orders) != 0 || len(store.items) != 0 {
		t.Fatal("rows committed after failed create")
	}
}

func TestCreateOrderValidatesBeforeStoreAccess(t *testing.T) {
	store := newMemStore()
	svc, last := newTestService(store)

	cases := []struct {
		name  string
		items []orderitem.NewItem
	}{
		{"empty items", nil},
		{"zero quantity", []orderitem.NewItem{{ProductID: 1, Quantity: 0}}},
		{"negative quantity", []orderitem.NewItem{{ProductID: 1, Quantity: -2}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), 1, tc.items)

			var invalid *apperrors.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want InvalidArgumentError", err)
			}
			if last.began {
				t.Fatal("transaction begun before validation")
			}
		})
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	_, err := svc.GetOrder(context.Background(), 999)

	var notFound *apperrors.ResourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want ResourceNotFoundError", err)
	}
	if notFound.Kind != apperrors.KindOrder {
		t.Fatalf("kind = %s, want Order", notFound.Kind)
	}
}

func TestGetOrdersGroupsItemsByOrder(t *testing.T) {
	store := newMemStore()
	store.addRefAccount(1)
	store.addProduct(10, 100)
	store.addProduct(20, 250)
	svc, _ := newTestService(store)

	first, err := svc.CreateOrder(context.Background(), 1, []orderitem.NewItem{
		{ProductID: 10, Quantity: 1},
		{ProductID: 20, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// An order whose items vanished still lists with an empty slice.
	store.orders = append(store.orders, order.Order{ID: 99, AccountID: 1, TotalPriceCents: 1})

	orders, err := svc.GetOrders(context.Background())
	if err != nil {
		t.Fatalf("GetOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}

	byID := map[int64]order.Order{}
	for _, o := range orders {
		byID[o.ID] = o
	}

	if got := len(byID[first].Items); got != 2 {
		t.Fatalf("first order items = %d, want 2", got)
	}
	if byID[99].Items == nil {
		t.Fatal("itemless order has nil items, want empty slice")
	}
	if len(byID[99].Items) != 0 {
		t.Fatalf("itemless order items = %d, want 0", len(byID[99].Items))
	}
}
