package sample

import (
	"time"

	"github.com/mpsense/sampler/pkg/area"
	"github.com/mpsense/sampler/pkg/inference"
	"github.com/mpsense/sampler/pkg/nmea"
)

// Input collects everything a capture learned about one sample.
type Input struct {
	SampleID int64
	Time     time.Time
	ImageURL string

	// Fix is used when HasFix is true, otherwise Fallback is used.
	Fix      nmea.Fix
	HasFix   bool
	Fallback area.Point

	Inference inference.Result
}

// Build merges capture results into a Record. Detection attributes are
// set only if Stage-1 succeeded, composition attributes only if the
// composition is known.
func Build(in Input) Record {
	res := Record{
		SampleID: in.SampleID,
		ImageURL: in.ImageURL,
		Datetime: in.Time.Local().Format(DatetimeLayout),
	}

	if in.HasFix {
		res.Latitude = in.Fix.Latitude
		res.Longitude = in.Fix.Longitude
		res.LocationSource = LocationGPS
	} else {
		res.Latitude = in.Fallback.Latitude
		res.Longitude = in.Fallback.Longitude
		res.LocationSource = LocationFallback
	}

	inf := in.Inference
	if inf.Detect.Status != inference.OK {
		return res
	}

	url := inf.Detection.AnnotatedImageURL
	count := inf.Detection.BoxCount
	density := float64(count) / Volume
	res.AnnotatedImageURL = &url
	res.BoxCount = &count
	res.Density = &density

	if comp := inf.Composition; comp != nil {
		res.PercentPS = copyFloat(comp.PS)
		res.PercentPP = copyFloat(comp.PP)
		res.PercentPE = copyFloat(comp.PE)
	}
	return res
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
