package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BuzzLyutic/task-registry-api/internal/model"
)

// StatsSource reports registry counts for the task gauges.
type StatsSource interface {
	Stats(ctx context.Context) (model.TaskStats, error)
}

type Metrics struct {
	registry  *prometheus.Registry
	namespace string
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func New(namespace string, stats StatsSource) *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		namespace: namespace,
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.registry.MustRegister(m.requests, m.duration)

	if stats != nil {
		m.registry.MustRegister(
			m.taskGauge("tasks_stored", "Tasks currently held in the registry.", stats,
				func(s model.TaskStats) int { return s.Total }),
			m.taskGauge("tasks_completed", "Stored tasks marked completed.", stats,
				func(s model.TaskStats) int { return s.Completed }),
		)
	}
	return m
}

func (m *Metrics) taskGauge(name, help string, src StatsSource, pick func(model.TaskStats) int) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, func() float64 {
		s, err := src.Stats(context.Background())
		if err != nil {
			return 0
		}
		return float64(pick(s))
	})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records every request under its chi route pattern, so
// /tasks/1 and /tasks/2 share the "/tasks/{task_id}" series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
