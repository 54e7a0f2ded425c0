package accountshttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rejot-dev/example-microservice/internal/service/models/account"
	"github.com/rejot-dev/example-microservice/internal/service/models/address"
	"github.com/rejot-dev/example-microservice/internal/service/models/event"
	createaccount "github.com/rejot-dev/example-microservice/internal/transport/http/accounts/create_account"
	createaddress "github.com/rejot-dev/example-microservice/internal/transport/http/accounts/create_address"
	getaccount "github.com/rejot-dev/example-microservice/internal/transport/http/accounts/get_account"
	getaddress "github.com/rejot-dev/example-microservice/internal/transport/http/accounts/get_address"
	listaccounts "github.com/rejot-dev/example-microservice/internal/transport/http/accounts/list_accounts"
	listevents "github.com/rejot-dev/example-microservice/internal/transport/http/accounts/list_events"
	"github.com/rejot-dev/example-microservice/pkg/http/middleware/trace"
	"github.com/rejot-dev/example-microservice/pkg/logger"
	"github.com/spf13/viper"
)

type service interface {
	CreateAccount(ctx context.Context, name, email string) (int64, error)
	GetAccount(ctx context.Context, id int64) (*account.Account, error)
	GetAccounts(ctx context.Context) ([]account.Account, error)
	CreateAddress(ctx context.Context, accountID int64, streetAddress, city, state, postalCode, country string) (int64, error)
	GetAddress(ctx context.Context, id int64) (*address.Address, error)
	GetEvents(ctx context.Context) ([]event.Event, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
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
		r.Post("/accounts", h.createAccount)
		r.Get("/accounts", h.listAccounts)
		r.Get("/accounts/{id}", h.getAccount)
		r.Post("/addresses", h.createAddress)
		r.Get("/addresses/{id}", h.getAddress)
		r.Get("/events", h.listEvents)
	})
}

func (h *HTTPTransport) createAccount(w http.ResponseWriter, r *http.Request) {
	createaccount.CreateAccount(w, r, h.service)
}

func (h *HTTPTransport) getAccount(w http.ResponseWriter, r *http.Request) {
	getaccount.GetAccount(w, r, h.service)
}

func (h *HTTPTransport) listAccounts(w http.ResponseWriter, r *http.Request) {
	listaccounts.ListAccounts(w, r, h.service)
}

func (h *HTTPTransport) createAddress(w http.ResponseWriter, r *http.Request) {
	createaddress.CreateAddress(w, r, h.service)
}

func (h *HTTPTransport) getAddress(w http.ResponseWriter, r *http.Request) {
	getaddress.GetAddress(w, r, h.service)
}

func (h *HTTPTransport) listEvents(w http.ResponseWriter, r *http.Request) {
	listevents.ListEvents(w, r, h.service)
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
	router.Use(trace.NewTraceMiddleware("accounts-svc"))

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
