package metrics

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSettlement(t *testing.T) {
	m := New()
	m.ObserveSettlement("netted", 2)
	m.ObserveSettlement("netted", 0)
	m.ObserveSettlement("per-expense", 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.settlements.WithLabelValues("netted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlements.WithLabelValues("per-expense")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.transactions))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveSettlement("netted", 1) })
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "ok", codeOf(nil))
	assert.Equal(t, "not_found", codeOf(connect.NewError(connect.CodeNotFound, errors.New("missing"))))
	assert.Equal(t, "unknown", codeOf(errors.New("boom")))
}

func TestInterceptor(t *testing.T) {
	m := New()

	ok := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&struct{}{}), nil
	})
	failing := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))
	})

	// Requests built by hand carry no Spec, so the procedure label is empty.
	req := connect.NewRequest(&struct{}{})
	_, err := m.Interceptor()(ok)(context.Background(), req)
	require.NoError(t, err)
	_, err = m.Interceptor()(failing)(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("", "invalid_argument")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSettlement("netted", 3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `splitsettle_settlements_total{mode="netted"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
