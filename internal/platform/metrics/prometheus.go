package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus bundles the process-level instruments exported on /metrics.
type Prometheus struct {
	registry       *prometheus.Registry
	httpDuration   *prometheus.HistogramVec
	ordersPlaced   *prometheus.CounterVec
	ordersRejected *prometheus.CounterVec
}

// NewPrometheus builds a registry with the back-office instruments plus the
// standard Go and process collectors.
func NewPrometheus(serviceName string) *Prometheus {
	registry := prometheus.NewRegistry()
	m := &Prometheus{
		registry: registry,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_http_duration_seconds",
			Help:        "HTTP request latency.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status_code"}),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "backoffice_orders_placed_total",
			Help:        "Total orders placed.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "backoffice_orders_rejected_total",
			Help:        "Total orders rejected before commit.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"reason"}),
	}
	registry.MustRegister(
		m.httpDuration,
		m.ordersPlaced,
		m.ordersRejected,
	)
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// ObserveHTTPRequestDuration records one served request.
func (p *Prometheus) ObserveHTTPRequestDuration(method, path, code string, duration float64) {
	p.httpDuration.WithLabelValues(method, path, code).Observe(duration)
}

// RecordOrderPlaced counts a committed placement.
func (p *Prometheus) RecordOrderPlaced(status string) {
	p.ordersPlaced.WithLabelValues(status).Inc()
}

// RecordOrderRejected counts a rejected placement by reason.
func (p *Prometheus) RecordOrderRejected(reason string) {
	p.ordersRejected.WithLabelValues(reason).Inc()
}

// Handler exposes the registry for the /metrics endpoint.
func (p *Prometheus) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware measures request latency per route. The route template is used
// instead of the raw path so cardinality stays bounded.
func (p *Prometheus) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		p.ObserveHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
