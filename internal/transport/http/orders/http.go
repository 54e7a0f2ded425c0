package ordershttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rejot-dev/example-microservice/internal/service/models/order"
	"github.com/rejot-dev/example-microservice/internal/service/models/orderitem"
	"github.com/rejot-dev/example-microservice/internal/service/models/product"
	"github.com/rejot-dev/example-microservice/internal/service/models/refaccount"
	createorder "github.com/rejot-dev/example-microservice/internal/transport/http/orders/create_order"
	createproduct "github.com/rejot-dev/example-microservice/internal/transport/http/orders/create_product"
	getorder "github.com/rejot-dev/example-microservice/internal/transport/http/orders/get_order"
	getproduct "github.com/rejot-dev/example-microservice/internal/transport/http/orders/get_product"
	listdestinationaccounts "github.com/rejot-dev/example-microservice/internal/transport/http/orders/list_destination_accounts"
	listorders "github.com/rejot-dev/example-microservice/internal/transport/http/orders/list_orders"
	listproducts "github.com/rejot-dev/example-microservice/internal/transport/http/orders/list_products"
	"github.com/rejot-dev/example-microservice/pkg/http/middleware/trace"
	"github.com/rejot-dev/example-microservice/pkg/logger"
	"github.com/spf13/viper"
)

type orderService interface {
	CreateOrder(ctx context.Context, accountID int64, items []orderitem.NewItem) (int64, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	GetOrders(ctx context.Context) ([]order.Order, error)
	GetDestinationAccounts(ctx context.Context) ([]refaccount.DestinationAccount, error)
}

type productService interface {
	CreateProduct(ctx context.Context, name string, description *string, priceCents int64) (int64, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	GetProducts(ctx context.Context) ([]product.Product, error)
}

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	orderSvc   orderService
	productSvc productService
}

func NewHTTPTransport(orderSvc orderService, productSvc productService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:     server,
		router:     router,
		orderSvc:   orderSvc,
		productSvc: productSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/status", status)
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.createOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Post("/products", h.createProduct)
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/destination_accounts", h.listDestinationAccounts)
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	createproduct.CreateProduct(w, r, h.productSvc)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	getproduct.GetProduct(w, r, h.productSvc)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.productSvc)
}

func (h *HTTPTransport) listDestinationAccounts(w http.ResponseWriter, r *http.Request) {
	listdestinationaccounts.ListDestinationAccounts(w, r, h.orderSvc)
}

func status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "OK"}); err != nil {
		slog.Error("Error writing status response", "error", err)
	}
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware("orders-svc"))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
