// Package metrics exposes Prometheus counters for RPCs and settlements.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple servers never collide.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	settlements  *prometheus.CounterVec
	transactions prometheus.Histogram
}

// New registers every collector, plus Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitsettle_rpc_requests_total",
			Help: "RPCs handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "splitsettle_rpc_duration_seconds",
			Help:    "RPC latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitsettle_settlements_total",
			Help: "Settlements computed, by mode.",
		}, []string{"mode"}),
		transactions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitsettle_settlement_transactions",
			Help:    "Transactions per computed settlement.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.settlements,
		m.transactions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSettlement records one computed settlement. Nil receivers are ignored.
func (m *Metrics) ObserveSettlement(mode string, transactions int) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(mode).Inc()
	m.transactions.Observe(float64(transactions))
}

// Interceptor counts and times every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			m.requests.WithLabelValues(procedure, codeOf(err)).Inc()
			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
