// Package iometrics exposes capture metrics to Prometheus.
package iometrics

import (
	"sync"

	"github.com/mpsense/sampler/pkg/capture"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// CapturesTotal counts finished captures by status.
	CapturesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sampler",
		Subsystem: "capture",
		Name:      "total",
		Help:      "Total number of finished captures by status (ok, degraded, failed).",
	}, []string{"status"})

	// CaptureDurationSeconds observes capture durations by status.
	CaptureDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sampler",
		Subsystem: "capture",
		Name:      "duration_seconds",
		Help:      "Capture duration from trigger to persisted record.",
		Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 90, 120, 180},
	}, []string{"status"})

	// DegradedTotal counts recovered failures by reason.
	DegradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sampler",
		Subsystem: "capture",
		Name:      "degraded_total",
		Help:      "Total number of recovered failures by reason.",
	}, []string{"reason"})

	// FailedTotal counts failed captures by the state they stopped in.
	FailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sampler",
		Subsystem: "capture",
		Name:      "failed_total",
		Help:      "Total number of failed captures by state.",
	}, []string{"state"})

	// LastSampleID is the sample ID of the last persisted record.
	LastSampleID = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sampler",
		Subsystem: "capture",
		Name:      "last_sample_id",
		Help:      "Sample ID of the last persisted record.",
	})

	// LastBoxCount is the particle count of the last persisted record.
	LastBoxCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sampler",
		Subsystem: "capture",
		Name:      "last_box_count",
		Help:      "Detected particles of the last persisted record, -1 when unknown.",
	})
)

// Register registers capture metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			CapturesTotal,
			CaptureDurationSeconds,
			DegradedTotal,
			FailedTotal,
			LastSampleID,
			LastBoxCount,
		)
	})
}

// Recorder updates the metrics from capture outcomes.
type Recorder struct{}

// NewRecorder registers the metrics and returns a capture.Recorder.
func NewRecorder() capture.Recorder {
	Register()
	return Recorder{}
}

// Observe implements capture.Recorder.
func (Recorder) Observe(out capture.Outcome) {
	status := out.Status()
	CapturesTotal.WithLabelValues(status).Inc()
	CaptureDurationSeconds.WithLabelValues(status).Observe(out.Duration.Seconds())

	if out.State != capture.Done {
		FailedTotal.WithLabelValues(out.FailedAt.String()).Inc()
		return
	}

	for _, reason := range out.Degraded {
		DegradedTotal.WithLabelValues(reason).Inc()
	}
	LastSampleID.Set(float64(out.Record.SampleID))
	if out.Record.BoxCount != nil {
		LastBoxCount.Set(float64(*out.Record.BoxCount))
	} else {
		LastBoxCount.Set(-1)
	}
}

