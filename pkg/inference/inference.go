// Package inference runs the two-stage analysis of a sample image: Stage-1
// detects and counts particles, Stage-2 estimates polymer composition and
// runs only when Stage-1 found something.
package inference

import (
	"context"
)

// Request identifies the image to analyze. Both stages get the same
// request.
type Request struct {
	ImageURL string `json:"image_url"`
	SampleID string `json:"sample_id"`
}

// Detection is the Stage-1 result.
type Detection struct {
	AnnotatedImageURL string `json:"annotated_image_url"`
	BoxCount          int    `json:"box_count"`
}

// Composition is the Stage-2 result in percents. A nil field means the
// service did not report it.
type Composition struct {
	PS *float64 `json:"percent_PS"`
	PP *float64 `json:"percent_PP"`
	PE *float64 `json:"percent_PE"`
}

// Detector is the Stage-1 service.
type Detector interface {
	Detect(ctx context.Context, req Request) (Detection, error)
}

// Classifier is the Stage-2 service.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Composition, error)
}

// Status of one stage.
type Status int

const (
	// Skipped means the stage was not called.
	Skipped Status = iota
	// OK means the stage returned a usable result.
	OK
	// Failed means the stage was called and its result is unusable.
	Failed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Failed:
		return "failed"
	default:
		return "skipped"
	}
}

// Stage reports how a stage went.
type Stage struct {
	Status Status
	Err    error
}

// Result collects both stages of one run.
type Result struct {
	Detect    Stage
	Detection Detection

	Classify Stage
	// Composition is nil when it is absent: Stage-1 or Stage-2 failed.
	// It holds zeroes when Stage-1 detected nothing.
	Composition *Composition
}

// Zero returns a composition of genuine zero percents.
func Zero() *Composition {
	var ps, pp, pe float64
	return &Composition{PS: &ps, PP: &pp, PE: &pe}
}
