package sample_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mpsense/sampler/pkg/area"
	"github.com/mpsense/sampler/pkg/inference"
	"github.com/mpsense/sampler/pkg/nmea"
	"github.com/mpsense/sampler/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		msg string
		ids []string
		res int64
	}{
		{"empty store", nil, 1},
		{"sequence", []string{"1", "2", "3"}, 4},
		{"gaps", []string{"3", "7", "5"}, 8},
		{"garbage skipped", []string{"3", "x", "7", ""}, 8},
		{"only garbage", []string{"abc", "n/a"}, 1},
		{"numeric text", []string{"7.0", "2"}, 8},
		{"exponent", []string{"1E+1"}, 11},
		{"fraction skipped", []string{"4", "9.5"}, 5},
		{"whitespace", []string{" 12 "}, 13},
		{"non positive", []string{"0", "-4"}, 1},
		{"max int64 skipped", []string{"9223372036854775807"}, 1},
		{"max int64 among others", []string{"5", "9223372036854775807"}, 6},
		{"below max int64", []string{"9223372036854775806"}, math.MaxInt64},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, sample.NextID(v.ids), v.msg)
	}
}

type idSource struct {
	ids []string
	err error
}

func (s idSource) SampleIDs(context.Context) ([]string, error) {
	return s.ids, s.err
}

func TestAllocator(t *testing.T) {
	ctx := context.Background()
	a := sample.NewAllocator(idSource{ids: []string{"3", "41", "7"}})
	id, err := a.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	a = sample.NewAllocator(idSource{err: errors.New("table not found")})
	_, err = a.Next(ctx)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	ts := time.Date(2025, 5, 18, 14, 30, 0, 0, time.Local)
	fallback := area.Point{Latitude: 14.4, Longitude: 121.25}
	fix := nmea.Fix{Latitude: 14.2, Longitude: 121.1, Kind: nmea.RMC}
	ps, pp, pe := 50.0, 30.0, 20.0

	base := sample.Input{
		SampleID: 5,
		Time:     ts,
		ImageURL: "https://b/img.jpg",
		Fallback: fallback,
	}

	t.Run("full success with fix", func(t *testing.T) {
		in := base
		in.Fix, in.HasFix = fix, true
		in.Inference = inference.Result{
			Detect: inference.Stage{Status: inference.OK},
			Detection: inference.Detection{
				AnnotatedImageURL: "https://b/annotated/5_annotated.png",
				BoxCount:          14,
			},
			Classify:    inference.Stage{Status: inference.OK},
			Composition: &inference.Composition{PS: &ps, PP: &pp, PE: &pe},
		}
		rec := sample.Build(in)

		assert.Equal(t, int64(5), rec.SampleID)
		assert.Equal(t, "2025-05-18 14:30:00", rec.Datetime)
		assert.Equal(t, 14.2, rec.Latitude)
		assert.Equal(t, 121.1, rec.Longitude)
		assert.Equal(t, sample.LocationGPS, rec.LocationSource)
		require.NotNil(t, rec.BoxCount)
		assert.Equal(t, 14, *rec.BoxCount)
		require.NotNil(t, rec.Density)
		assert.InDelta(t, 0.2, *rec.Density, 1e-12)
		assert.Equal(t, "https://b/annotated/5_annotated.png", *rec.AnnotatedImageURL)
		assert.Equal(t, 50.0, *rec.PercentPS)
		assert.Equal(t, 30.0, *rec.PercentPP)
		assert.Equal(t, 20.0, *rec.PercentPE)
	})

	t.Run("no detections gives zero composition", func(t *testing.T) {
		in := base
		in.Inference = inference.Result{
			Detect:      inference.Stage{Status: inference.OK},
			Detection:   inference.Detection{AnnotatedImageURL: "a"},
			Composition: inference.Zero(),
		}
		rec := sample.Build(in)

		assert.Equal(t, 0, *rec.BoxCount)
		assert.Equal(t, 0.0, *rec.Density)
		assert.Equal(t, 0.0, *rec.PercentPS)
		assert.Equal(t, 0.0, *rec.PercentPP)
		assert.Equal(t, 0.0, *rec.PercentPE)
		assert.Equal(t, 14.4, rec.Latitude)
		assert.Equal(t, 121.25, rec.Longitude)
		assert.Equal(t, sample.LocationFallback, rec.LocationSource)
	})

	t.Run("stage-1 failure omits detection fields", func(t *testing.T) {
		in := base
		in.Inference = inference.Result{
			Detect: inference.Stage{Status: inference.Failed},
		}
		rec := sample.Build(in)

		assert.Nil(t, rec.AnnotatedImageURL)
		assert.Nil(t, rec.BoxCount)
		assert.Nil(t, rec.Density)
		assert.Nil(t, rec.PercentPS)
		assert.Nil(t, rec.PercentPP)
		assert.Nil(t, rec.PercentPE)
		assert.Equal(t, "https://b/img.jpg", rec.ImageURL)
	})

	t.Run("stage-2 failure keeps detections", func(t *testing.T) {
		in := base
		in.Inference = inference.Result{
			Detect:    inference.Stage{Status: inference.OK},
			Detection: inference.Detection{AnnotatedImageURL: "a", BoxCount: 7},
			Classify:  inference.Stage{Status: inference.Failed},
		}
		rec := sample.Build(in)

		assert.Equal(t, 7, *rec.BoxCount)
		assert.InDelta(t, 0.1, *rec.Density, 1e-12)
		assert.Nil(t, rec.PercentPS)
		assert.Nil(t, rec.PercentPP)
		assert.Nil(t, rec.PercentPE)
	})
}
