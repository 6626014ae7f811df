package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/graph-module/graphdraw/pkg/observability"
)

// Metrics holds the Prometheus collectors of the server and implements the
// observability hook interfaces.
type Metrics struct {
	registry *prometheus.Registry

	buildTotal     *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	buildCells     prometheus.Histogram
	renderTotal    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.HistogramVec
	cacheEvents    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a fresh registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		buildTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphdraw_build_total",
				Help: "Number of scene builds by result.",
			},
			[]string{"result"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "graphdraw_build_duration_seconds",
				Help:    "Time taken to build a scene into a model.",
				Buckets: prometheus.DefBuckets,
			},
		),
		buildCells: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "graphdraw_build_cells",
				Help:    "Number of cells created per successful build.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		renderTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphdraw_render_total",
				Help: "Number of renders by format and result.",
			},
			[]string{"format", "result"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphdraw_render_duration_seconds",
				Help:    "Time taken to render a model.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		renderBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphdraw_render_bytes",
				Help:    "Size of rendered artifacts.",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"format"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphdraw_cache_events_total",
				Help: "Cache hits, misses and writes by key type.",
			},
			[]string{"key_type", "event"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphdraw_http_requests_total",
				Help: "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphdraw_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.buildTotal,
		m.buildDuration,
		m.buildCells,
		m.renderTotal,
		m.renderDuration,
		m.renderBytes,
		m.cacheEvents,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the registry served on /metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Register installs m as the process-wide build, render and cache hooks.
func (m *Metrics) Register() {
	observability.SetBuildHooks(m)
	observability.SetRenderHooks(m)
	observability.SetCacheHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnBuildStart implements observability.BuildHooks.
func (m *Metrics) OnBuildStart(context.Context, int, int) {}

// OnBuildComplete implements observability.BuildHooks.
func (m *Metrics) OnBuildComplete(_ context.Context, cells int, d time.Duration, err error) {
	m.buildTotal.WithLabelValues(result(err)).Inc()
	m.buildDuration.Observe(d.Seconds())
	if err == nil {
		m.buildCells.Observe(float64(cells))
	}
}

// OnRenderStart implements observability.RenderHooks.
func (m *Metrics) OnRenderStart(context.Context, string) {}

// OnRenderComplete implements observability.RenderHooks.
func (m *Metrics) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	m.renderTotal.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	if err == nil {
		m.renderBytes.WithLabelValues(format).Observe(float64(size))
	}
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) observeRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.BuildHooks  = (*Metrics)(nil)
	_ observability.RenderHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
)
