package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitsettle/internal/config"
	"github.com/mmynk/splitsettle/internal/events"
	"github.com/mmynk/splitsettle/internal/events/amqp"
	"github.com/mmynk/splitsettle/internal/events/kafka"
	"github.com/mmynk/splitsettle/internal/metrics"
	"github.com/mmynk/splitsettle/internal/middleware"
	"github.com/mmynk/splitsettle/internal/service"
	"github.com/mmynk/splitsettle/internal/storage"
	"github.com/mmynk/splitsettle/internal/storage/memory"
	"github.com/mmynk/splitsettle/internal/storage/postgres"
	"github.com/mmynk/splitsettle/internal/storage/sqlite"
	"github.com/mmynk/splitsettle/pkg/api/apiconnect"
	"github.com/mmynk/splitsettle/pkg/logging"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.DataBackend)

	publisher, err := newPublisher(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize events: %w", err)
	}
	defer publisher.Close()
	slog.Info("Events initialized", "backend", cfg.EventsBackend)

	m := metrics.New()
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(store, publisher, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newHandler mounts both services, /metrics and /healthz behind CORS and h2c.
func newHandler(store storage.Store, publisher events.Publisher, m *metrics.Metrics) http.Handler {
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(nil), m.Interceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSettlementServiceHandler(service.NewSettlementService(m), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store, publisher, m), interceptors))
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(corsMiddleware(mux), &http2.Server{})
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		return sqlite.New(cfg.SQLiteDBPath)
	case config.BackendPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	switch cfg.EventsBackend {
	case config.EventsAMQP:
		return amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	case config.EventsKafka:
		return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.EventsNone, "":
		return events.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.EventsBackend)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
