package orders

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/otel"
	"github.com/rejot-dev/example-microservice/internal/service/services/ordersvc"
	"github.com/rejot-dev/example-microservice/internal/service/services/productsvc"
	ordershttp "github.com/rejot-dev/example-microservice/internal/transport/http/orders"
)

// App represents the orders service application.
type App struct {
	orderSvc       *ordersvc.OrderService
	productSvc     *productsvc.ProductService
	transport      *ordershttp.HTTPTransport
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("orders-svc")

	postgresClient := postgres.MustNewClient("ORDERS")

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	productSvc := productsvc.MustNewProductService(
		productsvc.WithPostgresClient(postgresClient),
	)

	transport := ordershttp.NewHTTPTransport(orderSvc, productSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		productSvc:     productSvc,
		transport:      transport,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
