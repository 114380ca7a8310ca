package inference

import (
	"context"
	"log/slog"
)

// Orchestrator calls Stage-1 and, conditionally, Stage-2.
type Orchestrator struct {
	det Detector
	cls Classifier
}

// New creates Orchestrator. A nil detector makes every run report a
// Stage-1 failure, a nil classifier a Stage-2 failure when it is needed.
func New(det Detector, cls Classifier) *Orchestrator {
	return &Orchestrator{det: det, cls: cls}
}

// Run analyzes the image. It never fails as a whole, stage failures are
// reported in the Result.
func (o *Orchestrator) Run(
	ctx context.Context,
	imageURL, sampleID string,
) Result {
	var res Result
	req := Request{ImageURL: imageURL, SampleID: sampleID}

	if o.det == nil {
		res.Detect = Stage{Status: Failed, Err: NotConfiguredError("detector")}
		return res
	}

	det, err := o.det.Detect(ctx, req)
	if err != nil {
		slog.Warn("Stage-1 detection failed",
			"sample_id", sampleID, "error", err)
		res.Detect = Stage{Status: Failed, Err: err}
		return res
	}
	res.Detect = Stage{Status: OK}
	res.Detection = det

	if det.BoxCount == 0 {
		res.Composition = Zero()
		return res
	}

	if o.cls == nil {
		res.Classify = Stage{Status: Failed, Err: NotConfiguredError("classifier")}
		return res
	}

	comp, err := o.cls.Classify(ctx, req)
	if err != nil {
		slog.Warn("Stage-2 classification failed",
			"sample_id", sampleID, "box_count", det.BoxCount, "error", err)
		res.Classify = Stage{Status: Failed, Err: err}
		return res
	}
	res.Classify = Stage{Status: OK}
	res.Composition = &comp
	return res
}
