// Package metrics exposes poseview's Prometheus counters.
//
// Every Metrics value owns its registry so tests and multiple sessions in one
// process never collide on the default registerer. A nil *Metrics is valid
// and records nothing.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Skip reasons used as the "reason" label.
const (
	ReasonMissingPosition    = "missing_position"
	ReasonMissingOrientation = "missing_orientation"
	ReasonPanic              = "panic"
	ReasonOther              = "other"
)

// Metrics is the set of poseview collectors.
type Metrics struct {
	registry *prometheus.Registry

	SamplesReceived   prometheus.Counter
	Ingested          *prometheus.CounterVec
	Skipped           *prometheus.CounterVec
	DecodeErrors      prometheus.Counter
	LabelsProvisioned prometheus.Counter
	Replayed          prometheus.Counter
	ReplayDuration    prometheus.Histogram
	LogSize           prometheus.Gauge
}

// New registers a fresh collector set on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		SamplesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "poseview_samples_received_total",
			Help: "Pose samples handed to the dispatcher",
		}),
		Ingested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poseview_ingested_total",
			Help: "Samples accepted by a renderable, by renderable kind",
		}, []string{"renderable"}),
		Skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poseview_skipped_total",
			Help: "Samples a renderable skipped, by reason",
		}, []string{"reason"}),
		DecodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "poseview_decode_errors_total",
			Help: "Inbound records that could not be decoded",
		}),
		LabelsProvisioned: factory.NewCounter(prometheus.CounterOpts{
			Name: "poseview_labels_provisioned_total",
			Help: "Labels first seen on the stream",
		}),
		Replayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "poseview_replayed_samples_total",
			Help: "Logged samples replayed into newly enabled labels",
		}),
		ReplayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "poseview_replay_duration_seconds",
			Help:    "Time spent replaying the message log for one label",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		}),
		LogSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "poseview_message_log_size",
			Help: "Samples retained in the session message log",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) SampleReceived(logSize int) {
	if m == nil {
		return
	}
	m.SamplesReceived.Inc()
	m.LogSize.Set(float64(logSize))
}

func (m *Metrics) IngestOK(kind string) {
	if m == nil {
		return
	}
	m.Ingested.WithLabelValues(kind).Inc()
}

func (m *Metrics) IngestSkipped(reason string) {
	if m == nil {
		return
	}
	m.Skipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) DecodeFailed() {
	if m == nil {
		return
	}
	m.DecodeErrors.Inc()
}

func (m *Metrics) LabelProvisioned() {
	if m == nil {
		return
	}
	m.LabelsProvisioned.Inc()
}

// ReplayDone records one finished replay of n samples.
func (m *Metrics) ReplayDone(n int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Replayed.Add(float64(n))
	m.ReplayDuration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("metrics listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
