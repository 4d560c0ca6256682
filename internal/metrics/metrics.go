package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	rejected      prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_now",
			Name:      "fetch_total",
			Help:      "Current-conditions fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_now",
			Name:      "fetch_duration_seconds",
			Help:      "Time from request start to decoded conditions or failure.",
			Buckets:   prometheus.DefBuckets,
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_now",
			Name:      "fetch_rejected_total",
			Help:      "Fetch triggers dropped because another fetch was in flight.",
		}),
	}

	m.registry.MustRegister(
		m.fetchTotal,
		m.fetchDuration,
		m.rejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFetch implements weather.Recorder.
func (m *Metrics) ObserveFetch(outcome string, elapsed time.Duration) {
	m.fetchTotal.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(elapsed.Seconds())
}

// IncRejected implements weather.Recorder.
func (m *Metrics) IncRejected() {
	m.rejected.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
