package accounts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rejot-dev/example-microservice/internal/dal/postgres"
	"github.com/rejot-dev/example-microservice/internal/dal/rabbitmq"
	eventrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/event/postgres"
	"github.com/rejot-dev/example-microservice/internal/dal/repositories/eventpub"
	relaycursorrepo "github.com/rejot-dev/example-microservice/internal/dal/repositories/relaycursor/postgres"
	"github.com/rejot-dev/example-microservice/internal/otel"
	"github.com/rejot-dev/example-microservice/internal/service/services/accountsvc"
	accountshttp "github.com/rejot-dev/example-microservice/internal/transport/http/accounts"
	"github.com/rejot-dev/example-microservice/internal/worker/eventrelay"
	"golang.org/x/sync/errgroup"
)

// App represents the accounts service application.
type App struct {
	accountSvc     *accountsvc.AccountService
	transport      *accountshttp.HTTPTransport
	relayWorker    *eventrelay.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("accounts-svc")

	postgresClient := postgres.MustNewClient("ACCOUNTS")
	rabbitClient := rabbitmq.MustNewClient()

	accountSvc := accountsvc.MustNewAccountService(
		accountsvc.WithPostgresClient(postgresClient),
	)

	transport := accountshttp.NewHTTPTransport(accountSvc)
	transport.RegisterRoutes()

	relayWorker := eventrelay.NewWorker(
		eventrepo.NewPostgresEventRepository(postgresClient.Pool()),
		relaycursorrepo.NewPostgresRelayCursorRepository(postgresClient.Pool()),
		eventpub.NewEventPubRabbitMQRepository(rabbitClient),
	)

	return &App{
		accountSvc:     accountSvc,
		transport:      transport,
		relayWorker:    relayWorker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	g, gctx := errgroup.WithContext(workerCtx)

	g.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		a.relayWorker.Start(gctx)

		return nil
	})

	select {
	case <-stop:
		slog.Info("Shutdown signal received")
	case <-gctx.Done():
		slog.Error("Component failed, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := g.Wait(); err != nil {
		slog.Error("HTTP server error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
