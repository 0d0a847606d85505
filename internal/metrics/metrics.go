package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StoreOps = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "schoolanalytics", Name: "store_op_seconds", Help: "Record store operation latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op"})
	StoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolanalytics", Name: "store_errors_total", Help: "Record store errors",
	}, []string{"backend", "op"})
	DecodeFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolanalytics", Name: "loader_decode_failures_total", Help: "Collections that failed to deserialize",
	}, []string{"collection"})
	LegacyMigrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolanalytics", Name: "loader_migrations_total", Help: "Legacy write-back migrations",
	}, []string{"collection"})
	StoreHealth = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "schoolanalytics", Name: "store_ping_seconds", Help: "Store health check latency",
		Buckets: prometheus.DefBuckets,
	})

	Population = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "schoolanalytics", Name: "population", Help: "Records by kind and status",
	}, []string{"kind", "status"})
	Rates = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "schoolanalytics", Name: "rate_percent", Help: "Derived percentage metrics",
	}, []string{"metric"})
	StudentTeacherRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "schoolanalytics", Name: "student_teacher_ratio", Help: "Active students per active teacher",
	})
)

func init() {
	prometheus.MustRegister(StoreOps, StoreErrors, DecodeFailures, LegacyMigrations, StoreHealth,
		Population, Rates, StudentTeacherRatio)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveStoreOp(backend, op string, d time.Duration, err error) {
	StoreOps.WithLabelValues(backend, op).Observe(d.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(backend, op).Inc()
	}
}

func ObserveStorePing(d time.Duration) { StoreHealth.Observe(d.Seconds()) }
