package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "socks5_gateway"

// Metrics is the Prometheus telemetry surface for the proxy, grounded in
// postalsys-Muti-Metroo's internal/metrics package (promauto-factory,
// namespaced struct of gauges/counters) and Bwooce-latency-space's
// metrics.go (bandwidth-by-direction counter shape). This is ambient
// observability added by SPEC_FULL.md, not a spec.md feature — see
// SPEC_FULL.md §4.
type Metrics struct {
	ConnectionsAccepted prometheus.Counter
	ConnectionsRejected prometheus.Counter
	ConnectionsActive   prometheus.Gauge
	DialFailures        *prometheus.CounterVec

	BufferPoolLeased prometheus.GaugeFunc
	BufferPoolTotal  prometheus.GaugeFunc

	PumpBytes *prometheus.CounterVec
}

// NewMetrics constructs and registers every metric against the default
// registry, reading BufferPool counters live via GaugeFunc so the pool
// itself never has to know about Prometheus.
func NewMetrics(pool *BufferPool) *Metrics {
	factory := promauto.With(prometheus.DefaultRegisterer)

	return &Metrics{
		ConnectionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_accepted_total",
			Help:      "Total TCP connections accepted by the acceptor loop.",
		}),
		ConnectionsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_rejected_total",
			Help:      "Total connections rejected by the CIDR admission filter.",
		}),
		ConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connections_active",
			Help:      "Connections currently in the RELAY state.",
		}),
		DialFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dial_failures_total",
			Help:      "Egress dial failures, labeled by SOCKS5 reply code.",
		}, []string{"reply_code"}),
		BufferPoolLeased: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "buffer_pool_leased",
			Help:      "Number of buffer pool slots currently leased.",
		}, func() float64 { return float64(pool.LeasedCount()) }),
		BufferPoolTotal: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "buffer_pool_total",
			Help:      "Total number of buffer pool slots ever allocated.",
		}, func() float64 { return float64(pool.TotalCount()) }),
		PumpBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pump_bytes_total",
			Help:      "Bytes relayed by the pump, labeled by direction.",
		}, []string{"direction"}),
	}
}

// ServeMetrics serves the Prometheus exposition format on addr until the
// process exits. Mirrors Bwooce-latency-space's ServeMetrics shape.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
