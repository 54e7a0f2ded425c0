package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iorderitemrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iorderrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/iproductrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/interfaces/irefaccountrepo"
	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/dal/uow"
	"github.com/rejot-dev/example-microservice/internal/service/models/apperrors"
	"github.com/rejot-dev/example-microservice/internal/service/models/order"
	"github.com/rejot-dev/example-microservice/internal/service/models/orderitem"
	"github.com/rejot-dev/example-microservice/internal/service/models/product"
	"github.com/rejot-dev/example-microservice/internal/service/models/refaccount"
)

// OrderService validates order requests against the product catalog and the
// replicated destination accounts view, snapshots prices, and commits the
// order with its items atomically.
type OrderService struct {
	pgClient   *postgres.Client
	uowFactory func() unitOfWork
}

func (s *OrderService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}

	return uow.NewUnitOfWork(s.pgClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
	RefAccountRepository() irefaccountrepo.IRefAccountRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// CreateOrder creates one order with its items in a single transaction.
//
// The account check reads destination_accounts, which is replicated
// asynchronously from the accounts service. A just-created account may not
// be visible yet; that surfaces as a ReferenceNotFoundError and the caller
// decides whether to retry. No retry or wait happens here.
//
// Prices are fetched once, inside the transaction, and copied onto each
// item as price_at_time_of_order. Totals are integer arithmetic in minor
// currency units.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	accountID int64,
	items []orderitem.NewItem,
) (int64, error) {
	if len(items) == 0 {
		return 0, apperrors.NewInvalidArgument("orders must include at least one item")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return 0, apperrors.NewInvalidArgument(
				fmt.Sprintf("quantity for product %d must be at least 1", item.ProductID))
		}
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	found, err := work.RefAccountRepository().Lookup(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, apperrors.NewReferenceNotFound(apperrors.KindAccount, accountID)
	}

	productIDs := dedupeProductIDs(items)

	products, err := work.ProductRepository().Query(ctx, &product.QueryProductsModel{Ids: productIDs})
	if err != nil {
		return 0, err
	}

	priceByProduct := make(map[int64]int64, len(products))
	for _, p := range products {
		priceByProduct[p.ID] = p.PriceCents
	}

	if len(products) != len(productIDs) {
		missing := make([]int64, 0, len(productIDs)-len(products))
		for _, id := range productIDs {
			if _, ok := priceByProduct[id]; !ok {
				missing = append(missing, id)
			}
		}

		return 0, apperrors.NewReferenceNotFound(apperrors.KindProducts, missing...)
	}

	var totalPrice int64
	for _, item := range items {
		totalPrice += priceByProduct[item.ProductID] * int64(item.Quantity)
	}

	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		AccountID:       accountID,
		TotalPriceCents: totalPrice,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		return 0, err
	}

	orderItems := make([]orderitem.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, orderitem.OrderItem{
			OrderID:            inserted.ID,
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			PriceAtTimeOfOrder: priceByProduct[item.ProductID],
		})
	}

	if _, err := work.OrderItemRepository().BulkInsert(ctx, orderItems); err != nil {
		return 0, err
	}

	if err := work.Commit(ctx); err != nil {
		return 0, err
	}

	return inserted.ID, nil
}

// GetOrder retrieves one order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.NewResourceNotFound(apperrors.KindOrder, id)
	}

	o := orders[0]

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{id},
	})
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, items...)

	return &o, nil
}

// GetOrders retrieves all orders with their items. Items for all returned
// orders are fetched in one batched query and grouped; an order without
// items keeps an empty slice.
func (s *OrderService) GetOrders(ctx context.Context) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: orderIDs,
	})
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[int64][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	for i := range orders {
		orders[i].Items = append(orders[i].Items, itemsByOrder[orders[i].ID]...)
	}

	return orders, nil
}

// GetDestinationAccounts lists the replicated accounts view, including
// synced_at for staleness display.
func (s *OrderService) GetDestinationAccounts(ctx context.Context) ([]refaccount.DestinationAccount, error) {
	return s.newUOW().RefAccountRepository().List(ctx)
}

func dedupeProductIDs(items []orderitem.NewItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}
