package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counters and latencies for the prometheus scrape endpoint.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// TxMetrics records composite transaction outcomes.
type TxMetrics struct {
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(cfg Config) (*HTTPMetrics, *TxMetrics, error) {
	return newPrometheusMetrics(prometheus.DefaultRegisterer, cfg)
}

func newPrometheusMetrics(registerer prometheus.Registerer, cfg Config) (*HTTPMetrics, *TxMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "maderas"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	h := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "maderas_http_requests_total",
			Help:        "HTTP requests by method, route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "maderas_http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "maderas_http_requests_in_flight",
			Help:        "HTTP requests currently being served.",
			ConstLabels: constLabels,
		}),
	}
	tx := &TxMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "maderas_composite_tx_total",
			Help:        "Composite transactions by header table, operation and outcome.",
			ConstLabels: constLabels,
		}, []string{"table", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "maderas_composite_tx_duration_seconds",
			Help:        "Composite transaction latency including connection acquisition.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		}, []string{"table", "operation"}),
	}

	for _, c := range []prometheus.Collector{h.requests, h.duration, h.inFlight, tx.outcomes, tx.duration} {
		if err := registerer.Register(c); err != nil {
			return nil, nil, err
		}
	}

	return h, tx, nil
}

// GinMiddleware observes every request except the scrape endpoint itself.
func (m *HTTPMetrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveTx records a finished composite transaction.
func (m *TxMetrics) ObserveTx(table, operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(table, operation, outcome).Inc()
	m.duration.WithLabelValues(table, operation).Observe(elapsed.Seconds())
}
