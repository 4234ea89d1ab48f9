// Package metrics holds the Prometheus collectors for the portal service.
// Everything is registered on a private registry; nothing touches the
// global default one.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spotter"

// Impersonation event labels.
const (
	EventStart    = "start"
	EventStop     = "stop"
	EventExpire   = "expire"
	EventConflict = "conflict"
	EventDenied   = "denied"
)

// Metrics is safe to use through a nil pointer; every recorder is then a
// no-op. Services take it as an optional dependency.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge

	ImpersonationEventsTotal *prometheus.CounterVec
	ImpersonationActive      prometheus.Gauge

	RateLimitedTotal *prometheus.CounterVec

	HousekeepingRunsTotal *prometheus.CounterVec
	CalendarConnectsTotal *prometheus.CounterVec
}

// New registers every collector, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route pattern and status code.",
		}, []string{"method", "route", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),

		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		ImpersonationEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "impersonation",
			Name:      "events_total",
			Help:      "Impersonation lifecycle events.",
		}, []string{"event"}),

		ImpersonationActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "impersonation",
			Name:      "active_sessions",
			Help:      "Active impersonation sessions at the last housekeeping run.",
		}),

		RateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"profile"}),

		HousekeepingRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "housekeeping",
			Name:      "runs_total",
			Help:      "Housekeeping task runs by task and result.",
		}, []string{"task", "result"}),

		CalendarConnectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calendar",
			Name:      "connects_total",
			Help:      "Calendar OAuth callbacks by provider and result.",
		}, []string{"provider", "result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPInFlight,
		m.ImpersonationEventsTotal,
		m.ImpersonationActive,
		m.RateLimitedTotal,
		m.HousekeepingRunsTotal,
		m.CalendarConnectsTotal,
	)

	return m
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Middleware records request count and latency. The route label is the
// ServeMux pattern, so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.HTTPInFlight.Inc()
		defer m.HTTPInFlight.Dec()

		snap := httpsnoop.CaptureMetrics(next, w, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(snap.Code)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(snap.Duration.Seconds())
	})
}

func (m *Metrics) ImpersonationEvent(event string) {
	if m == nil {
		return
	}
	m.ImpersonationEventsTotal.WithLabelValues(event).Add(1)
}

func (m *Metrics) ImpersonationEvents(event string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ImpersonationEventsTotal.WithLabelValues(event).Add(float64(n))
}

func (m *Metrics) SetActiveImpersonations(n int64) {
	if m == nil {
		return
	}
	m.ImpersonationActive.Set(float64(n))
}

// RateLimited returns a reject hook for httpx.WithRejectHook.
func (m *Metrics) RateLimited(profile string) func(*http.Request) {
	return func(*http.Request) {
		if m == nil {
			return
		}
		m.RateLimitedTotal.WithLabelValues(profile).Inc()
	}
}

func (m *Metrics) HousekeepingRun(task string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.HousekeepingRunsTotal.WithLabelValues(task, result).Inc()
}

func (m *Metrics) CalendarConnect(provider string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CalendarConnectsTotal.WithLabelValues(provider, result).Inc()
}
