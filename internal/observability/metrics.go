package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/botboard/backend/internal/config"
)

// Provider owns the Prometheus registry and the service's metric vectors.
type Provider struct {
	registry *prometheus.Registry

	httpRequestCounter *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
	ingestCounter      *prometheus.CounterVec
}

// Setup builds the metrics provider, or returns nil when metrics are disabled.
func Setup(cfg config.ObservabilityConfig) *Provider {
	if !cfg.EnableMetrics {
		return nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	provider := &Provider{
		registry: registry,
		httpRequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "botboard_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "botboard_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ingestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "botboard_ingest_total",
			Help: "Ingested interactions by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(provider.httpRequestCounter, provider.httpRequestLatency, provider.ingestCounter)
	return provider
}

// Handler exposes the registry for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	if p == nil {
		return nil
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Provider) RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.httpRequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpRequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (p *Provider) RecordIngest(success bool) {
	if p == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "error"
	}
	p.ingestCounter.WithLabelValues(outcome).Inc()
}
