package rpc

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus collectors of a Dispatcher.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ProxyPicks      *prometheus.CounterVec
}

// NewMetrics initializes and registers metrics with the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers metrics with a custom registry.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bitclout_node_requests_total",
			Help: "Node API calls by method, mode and outcome",
		}, []string{"method", "mode", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bitclout_node_request_duration_seconds",
			Help:    "Node API call latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "mode"}),
		ProxyPicks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bitclout_node_proxy_picks_total",
			Help: "Proxy selections by mode and proxy host",
		}, []string{"mode", "proxy"}),
	}
}

func (m *Metrics) observe(req Request, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	method, mode := req.Method.String(), req.Target.Mode.String()
	m.Requests.WithLabelValues(method, mode, outcome(err)).Inc()
	m.RequestDuration.WithLabelValues(method, mode).Observe(elapsed.Seconds())
	if req.Proxy != nil {
		m.ProxyPicks.WithLabelValues(mode, req.Proxy.Host).Inc()
	}
}

func outcome(err error) string {
	var nodeErr *NodeError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &nodeErr):
		return "node_error"
	case errors.Is(err, ErrDecodingResponse):
		return "decode_error"
	default:
		return "transport_error"
	}
}
