package ioweb_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mpsense/sampler/internal/ioweb"
	"github.com/mpsense/sampler/pkg/capture"
	"github.com/mpsense/sampler/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	out capture.Outcome
	err error
	ctx context.Context
}

func (f *fakeCapturer) TryCapture(ctx context.Context) (capture.Outcome, error) {
	f.ctx = ctx
	return f.out, f.err
}

func post(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/capture", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestCaptureOK(t *testing.T) {
	count := 0
	fc := &fakeCapturer{out: capture.Outcome{
		State:  capture.Done,
		Record: sample.Record{SampleID: 9, ImageURL: "https://b/9.jpg", BoxCount: &count},
	}}
	w, body := post(t, ioweb.New(5000, fc).Handler())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	rec, ok := body["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 9.0, rec["sampleID"])
	assert.Equal(t, 0.0, rec["boxCount"])
	assert.NotContains(t, body, "error")
	assert.NoError(t, fc.ctx.Err())
}

func TestCaptureDegraded(t *testing.T) {
	fc := &fakeCapturer{out: capture.Outcome{
		State:    capture.Done,
		Record:   sample.Record{SampleID: 10},
		Degraded: []string{capture.DegradedStage1},
	}}
	w, body := post(t, ioweb.New(5000, fc).Handler())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, []any{"stage1"}, body["degraded"])
}

func TestCaptureFailed(t *testing.T) {
	fc := &fakeCapturer{
		out: capture.Outcome{State: capture.Failed, FailedAt: capture.Uploading},
		err: capture.UploadError("k", errors.New("network down")),
	}
	w, body := post(t, ioweb.New(5000, fc).Handler())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed", body["status"])
	assert.NotEmpty(t, body["error"])
}

func TestCaptureBusy(t *testing.T) {
	fc := &fakeCapturer{
		out: capture.Outcome{State: capture.Failed},
		err: capture.BusyError(errors.New("in flight")),
	}
	w, body := post(t, ioweb.New(5000, fc).Handler())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "failed", body["status"])
}

func TestHealthAndMetrics(t *testing.T) {
	h := ioweb.New(5000, &fakeCapturer{}).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
