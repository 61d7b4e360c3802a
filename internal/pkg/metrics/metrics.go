// Package metrics holds the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hub_balance"

// Metrics groups the service collectors.
type Metrics struct {
	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	chainFailures   *prometheus.CounterVec
	connectedChains prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "JSON-RPC requests sent to chain gateways.",
		}, []string{"chain", "method", "status"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Latency of JSON-RPC requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"chain", "method"}),
		chainFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chain_failures_total",
			Help:      "Chains dropped from a result, by stage.",
		}, []string{"chain", "stage"}),
		connectedChains: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_chains",
			Help:      "Chains currently connected.",
		}),
	}
	reg.MustRegister(m.rpcRequests, m.rpcDuration, m.chainFailures, m.connectedChains)
	return m
}

// MustRegisterMetrics registers the collectors with the default registry.
func MustRegisterMetrics() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// ObserveRPC records one RPC call.
func (m *Metrics) ObserveRPC(chain, method string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.rpcRequests.WithLabelValues(chain, method, status).Inc()
	m.rpcDuration.WithLabelValues(chain, method).Observe(time.Since(started).Seconds())
}

// ChainFailure records a chain dropped at stage ("connect", "balance", "assets").
func (m *Metrics) ChainFailure(chain, stage string) {
	if m == nil {
		return
	}
	m.chainFailures.WithLabelValues(chain, stage).Inc()
}

// SetConnectedChains sets the connected chains gauge.
func (m *Metrics) SetConnectedChains(n int) {
	if m == nil {
		return
	}
	m.connectedChains.Set(float64(n))
}
