// Package metrics provides Prometheus metrics collection for the recovery
// service.
package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global metrics, stored behind atomic pointers so the record helpers
	// stay lock-free and are safe no-ops before Init.
	requestsTotal   atomic.Pointer[prometheus.CounterVec]
	requestDuration atomic.Pointer[prometheus.HistogramVec]
	attemptsTotal   atomic.Pointer[prometheus.CounterVec]
)

// Init initializes all Prometheus metrics and registers them with the
// provided registry. Call once at startup.
func Init(reg prometheus.Registerer) error {
	requestsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tfn",
			Subsystem: "recovery",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled by the recovery service",
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestsTotalVec); err != nil {
		return fmt.Errorf("failed to register requestsTotal: %w", err)
	}

	requestDurationVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tfn",
			Subsystem: "recovery",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestDurationVec); err != nil {
		return fmt.Errorf("failed to register requestDuration: %w", err)
	}

	attemptsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tfn",
			Subsystem: "recovery",
			Name:      "attempts_total",
			Help:      "Recovery verification attempts by phase and outcome",
		},
		[]string{"phase", "outcome"},
	)
	if err := reg.Register(attemptsTotalVec); err != nil {
		return fmt.Errorf("failed to register attemptsTotal: %w", err)
	}

	requestsTotal.Store(requestsTotalVec)
	requestDuration.Store(requestDurationVec)
	attemptsTotal.Store(attemptsTotalVec)

	return nil
}

// RecordRequest increments the request counter for the given method,
// normalized path, and status code.
func RecordRequest(method, path, statusCode string) {
	if counter := requestsTotal.Load(); counter != nil {
		counter.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordRequestDuration records the latency for a request in seconds.
func RecordRequestDuration(method, path, statusCode string, durationSeconds float64) {
	if histogram := requestDuration.Load(); histogram != nil {
		histogram.WithLabelValues(method, path, statusCode).Observe(durationSeconds)
	}
}

// RecordAttempt increments the recovery attempt counter. phase is one of
// phase1/phase2/phase3/malformed; outcome is the failure reason code or
// "success".
func RecordAttempt(phase, outcome string) {
	if counter := attemptsTotal.Load(); counter != nil {
		counter.WithLabelValues(phase, outcome).Inc()
	}
}

// Handler returns the HTTP handler serving Prometheus text-format metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
