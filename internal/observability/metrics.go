// Package observability provides Prometheus metrics for download jobs.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ytget/songbatch/internal/model"
)

const namespace = "songbatch"

// Metrics holds all application metrics.
type Metrics struct {
	registry *prometheus.Registry

	JobsStarted  prometheus.Counter
	JobsFinished *prometheus.CounterVec
	JobDuration  prometheus.Histogram

	TracksFetched prometheus.Counter
	TracksFailed  prometheus.Counter
	FetchDuration prometheus.Histogram

	CurrentSpeed prometheus.Gauge
}

// New creates all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		JobsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "started_total",
			Help:      "Total number of download jobs started",
		}),
		JobsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "finished_total",
			Help:      "Total number of download jobs finished by terminal state",
		}, []string{"state"}),
		JobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Wall time of download jobs",
			Buckets:   []float64{10, 30, 60, 300, 900, 1800, 3600, 7200},
		}),
		TracksFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracks",
			Name:      "fetched_total",
			Help:      "Total number of tracks downloaded successfully",
		}),
		TracksFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracks",
			Name:      "failed_total",
			Help:      "Total number of tracks whose download failed",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tracks",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching a single track",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		CurrentSpeed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "download",
			Name:      "speed_bytes_per_second",
			Help:      "Most recently observed download speed",
		}),
	}
}

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordJobStarted increments the started jobs counter.
func (m *Metrics) RecordJobStarted() {
	m.JobsStarted.Inc()
}

// RecordJobFinished records the terminal state and duration of a job.
func (m *Metrics) RecordJobFinished(state model.JobState, elapsed time.Duration) {
	m.JobsFinished.WithLabelValues(state.String()).Inc()
	m.JobDuration.Observe(elapsed.Seconds())
}

// RecordFetch records the outcome of a single track fetch.
func (m *Metrics) RecordFetch(err error, elapsed time.Duration) {
	m.FetchDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.TracksFailed.Inc()
		return
	}
	m.TracksFetched.Inc()
}

// SetSpeed updates the current speed gauge.
func (m *Metrics) SetSpeed(bytesPerSecond float64) {
	m.CurrentSpeed.Set(bytesPerSecond)
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
