package inference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mpsense/sampler/pkg/inference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	res   inference.Detection
	err   error
	calls int
	req   inference.Request
}

func (f *fakeDetector) Detect(
	_ context.Context,
	req inference.Request,
) (inference.Detection, error) {
	f.calls++
	f.req = req
	return f.res, f.err
}

type fakeClassifier struct {
	res   inference.Composition
	err   error
	calls int
	req   inference.Request
}

func (f *fakeClassifier) Classify(
	_ context.Context,
	req inference.Request,
) (inference.Composition, error) {
	f.calls++
	f.req = req
	return f.res, f.err
}

func ptr(f float64) *float64 { return &f }

func TestRunDetections(t *testing.T) {
	det := &fakeDetector{res: inference.Detection{
		AnnotatedImageURL: "https://b/annotated/5_annotated.png",
		BoxCount:          14,
	}}
	cls := &fakeClassifier{res: inference.Composition{
		PS: ptr(50), PP: ptr(30), PE: ptr(20),
	}}
	o := inference.New(det, cls)

	res := o.Run(context.Background(), "https://b/img.jpg", "5")
	assert.Equal(t, 1, det.calls)
	assert.Equal(t, 1, cls.calls)
	assert.Equal(t, inference.Request{ImageURL: "https://b/img.jpg", SampleID: "5"}, det.req)
	assert.Equal(t, det.req, cls.req)

	assert.Equal(t, inference.OK, res.Detect.Status)
	assert.Equal(t, inference.OK, res.Classify.Status)
	assert.Equal(t, 14, res.Detection.BoxCount)
	require.NotNil(t, res.Composition)
	assert.Equal(t, 50.0, *res.Composition.PS)
	assert.Equal(t, 30.0, *res.Composition.PP)
	assert.Equal(t, 20.0, *res.Composition.PE)
}

func TestRunNoDetections(t *testing.T) {
	det := &fakeDetector{res: inference.Detection{BoxCount: 0}}
	cls := &fakeClassifier{}
	res := inference.New(det, cls).Run(context.Background(), "u", "1")

	assert.Equal(t, 0, cls.calls)
	assert.Equal(t, inference.OK, res.Detect.Status)
	assert.Equal(t, inference.Skipped, res.Classify.Status)
	require.NotNil(t, res.Composition)
	assert.Equal(t, inference.Zero(), res.Composition)
}

func TestRunStage1Failure(t *testing.T) {
	det := &fakeDetector{err: errors.New("connection refused")}
	cls := &fakeClassifier{}
	res := inference.New(det, cls).Run(context.Background(), "u", "1")

	assert.Equal(t, 1, det.calls)
	assert.Equal(t, 0, cls.calls)
	assert.Equal(t, inference.Failed, res.Detect.Status)
	assert.Error(t, res.Detect.Err)
	assert.Equal(t, inference.Skipped, res.Classify.Status)
	assert.Nil(t, res.Composition)
}

func TestRunStage2Failure(t *testing.T) {
	det := &fakeDetector{res: inference.Detection{BoxCount: 3}}
	cls := &fakeClassifier{err: errors.New("status 500")}
	res := inference.New(det, cls).Run(context.Background(), "u", "1")

	assert.Equal(t, 1, cls.calls)
	assert.Equal(t, inference.OK, res.Detect.Status)
	assert.Equal(t, 3, res.Detection.BoxCount)
	assert.Equal(t, inference.Failed, res.Classify.Status)
	assert.Nil(t, res.Composition)
}

func TestRunPartialComposition(t *testing.T) {
	det := &fakeDetector{res: inference.Detection{BoxCount: 2}}
	cls := &fakeClassifier{res: inference.Composition{PS: ptr(100)}}
	res := inference.New(det, cls).Run(context.Background(), "u", "1")

	require.NotNil(t, res.Composition)
	assert.Equal(t, 100.0, *res.Composition.PS)
	assert.Nil(t, res.Composition.PP)
	assert.Nil(t, res.Composition.PE)
}

func TestRunNotConfigured(t *testing.T) {
	res := inference.New(nil, nil).Run(context.Background(), "u", "1")
	assert.Equal(t, inference.Failed, res.Detect.Status)
	assert.Equal(t, inference.Skipped, res.Classify.Status)

	det := &fakeDetector{res: inference.Detection{BoxCount: 1}}
	res = inference.New(det, nil).Run(context.Background(), "u", "1")
	assert.Equal(t, inference.OK, res.Detect.Status)
	assert.Equal(t, inference.Failed, res.Classify.Status)
	assert.Nil(t, res.Composition)

	det.res.BoxCount = 0
	res = inference.New(det, nil).Run(context.Background(), "u", "1")
	assert.Equal(t, inference.Skipped, res.Classify.Status)
	assert.NotNil(t, res.Composition)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", inference.OK.String())
	assert.Equal(t, "failed", inference.Failed.String())
	assert.Equal(t, "skipped", inference.Skipped.String())
}
