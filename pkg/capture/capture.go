// Package capture drives one sample acquisition from camera trigger to the
// persisted record.
//
// Collaborators are injected as interfaces, the controller owns no devices
// or clients. Failures of the camera, the upload, the ID allocation and the
// record write end a capture. Inference and GPS failures degrade it: the
// record is still written, with fewer attributes or fallback coordinates.
package capture

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mpsense/sampler/pkg/inference"
	"github.com/mpsense/sampler/pkg/nmea"
	"github.com/mpsense/sampler/pkg/sample"
)

// Camera grants exclusive access to the image sensor.
type Camera interface {
	Acquire(ctx context.Context) (CameraHandle, error)
}

// CameraHandle is an acquired camera. It has to be closed after use.
type CameraHandle interface {
	// Capture writes one still JPEG image to path.
	Capture(ctx context.Context, path string) error
	Close() error
}

// ObjectStore keeps captured images and returns their public locators.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Locator obtains a GPS fix. It returns false without error when no fix
// came in time.
type Locator interface {
	Locate(ctx context.Context) (nmea.Fix, bool, error)
}

// Analyzer runs inference on an uploaded image.
type Analyzer interface {
	Run(ctx context.Context, imageURL, sampleID string) inference.Result
}

// Notifier learns about every persisted record.
type Notifier interface {
	Notify(ctx context.Context, rec sample.Record) error
}

// Recorder receives finished outcomes, for example to keep metrics.
type Recorder interface {
	Observe(out Outcome)
}

// State of a capture.
type State int

const (
	Idle State = iota
	Capturing
	Uploading
	Allocating
	// Inferring covers GPS acquisition too, both run concurrently and
	// neither can fail the capture.
	Inferring
	Persisting
	Done
	Failed
)

var stateNames = map[State]string{
	Idle:       "idle",
	Capturing:  "capturing",
	Uploading:  "uploading",
	Allocating: "allocating",
	Inferring:  "inferring",
	Persisting: "persisting",
	Done:       "done",
	Failed:     "failed",
}

func (s State) String() string {
	return stateNames[s]
}

// Reasons of a degraded capture.
const (
	DegradedStage1     = "stage1"
	DegradedStage2     = "stage2"
	DegradedGPSTimeout = "gps-timeout"
	DegradedGPSError   = "gps-error"
)

// Outcome describes a finished capture.
type Outcome struct {
	// ID identifies the capture run in logs.
	ID uuid.UUID `json:"captureID"`

	// Record is set when State is Done.
	Record sample.Record `json:"record"`

	State State `json:"-"`

	// FailedAt is the state in which a failed capture stopped.
	FailedAt State `json:"-"`

	// Degraded lists the recovered failures of a successful capture.
	Degraded []string `json:"degraded,omitempty"`

	Duration time.Duration `json:"-"`
}

// IsDegraded is true for a successful capture that lost some attributes.
func (o Outcome) IsDegraded() bool {
	return o.State == Done && len(o.Degraded) > 0
}

// Status is "ok", "degraded" or "failed".
func (o Outcome) Status() string {
	switch {
	case o.State != Done:
		return "failed"
	case o.IsDegraded():
		return "degraded"
	default:
		return "ok"
	}
}

type noopRecorder struct{}

func (noopRecorder) Observe(Outcome) {}
