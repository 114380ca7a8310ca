package iometrics_test

import (
	"testing"
	"time"

	"github.com/mpsense/sampler/internal/iometrics"
	"github.com/mpsense/sampler/pkg/capture"
	"github.com/mpsense/sampler/pkg/sample"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	rec := iometrics.NewRecorder()
	// second registration must not panic
	iometrics.Register()

	okBefore := testutil.ToFloat64(iometrics.CapturesTotal.WithLabelValues("ok"))
	degBefore := testutil.ToFloat64(iometrics.CapturesTotal.WithLabelValues("degraded"))
	failBefore := testutil.ToFloat64(iometrics.FailedTotal.WithLabelValues("uploading"))
	gpsBefore := testutil.ToFloat64(iometrics.DegradedTotal.WithLabelValues(capture.DegradedGPSTimeout))

	count := 4
	rec.Observe(capture.Outcome{
		State:    capture.Done,
		Record:   sample.Record{SampleID: 12, BoxCount: &count},
		Duration: 3 * time.Second,
	})
	assert.Equal(t, okBefore+1,
		testutil.ToFloat64(iometrics.CapturesTotal.WithLabelValues("ok")))
	assert.Equal(t, 12.0, testutil.ToFloat64(iometrics.LastSampleID))
	assert.Equal(t, 4.0, testutil.ToFloat64(iometrics.LastBoxCount))

	rec.Observe(capture.Outcome{
		State:    capture.Done,
		Record:   sample.Record{SampleID: 13},
		Degraded: []string{capture.DegradedStage1, capture.DegradedGPSTimeout},
	})
	assert.Equal(t, degBefore+1,
		testutil.ToFloat64(iometrics.CapturesTotal.WithLabelValues("degraded")))
	assert.Equal(t, gpsBefore+1,
		testutil.ToFloat64(iometrics.DegradedTotal.WithLabelValues(capture.DegradedGPSTimeout)))
	assert.Equal(t, -1.0, testutil.ToFloat64(iometrics.LastBoxCount))

	rec.Observe(capture.Outcome{State: capture.Failed, FailedAt: capture.Uploading})
	assert.Equal(t, failBefore+1,
		testutil.ToFloat64(iometrics.FailedTotal.WithLabelValues("uploading")))
	assert.Equal(t, 13.0, testutil.ToFloat64(iometrics.LastSampleID))
}
