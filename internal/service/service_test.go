package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitsettle/internal/events"
	"github.com/mmynk/splitsettle/internal/metrics"
	"github.com/mmynk/splitsettle/internal/middleware"
	"github.com/mmynk/splitsettle/internal/storage/sqlite"
	"github.com/mmynk/splitsettle/pkg/api/apiconnect"
)

// recordingPublisher keeps every event it is given, or fails with err.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testServer struct {
	settlement apiconnect.SettlementServiceClient
	groups     apiconnect.GroupServiceClient
	publisher  *recordingPublisher
	metrics    *metrics.Metrics
}

// setupTestServer serves both services over HTTP, backed by a temporary SQLite database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	m := metrics.New()
	publisher := &recordingPublisher{}
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(nil), m.Interceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(m), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, publisher, m), interceptors))
	mux.Handle("/metrics", m.Handler())

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{
		settlement: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		groups:     apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		publisher:  publisher,
		metrics:    m,
	}
}

// requireCode asserts err is a Connect error with the given code.
func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	var connectErr *connect.Error
	require.True(t, errors.As(err, &connectErr), "expected connect error, got %v", err)
	require.Equal(t, code, connectErr.Code(), "message: %s", connectErr.Message())
}

// scrape returns the metrics exposition text.
func (s *testServer) scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	s.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}
