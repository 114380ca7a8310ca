package ioinfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/mpsense/sampler/pkg/inference"
)

// client calls one model with a per-attempt timeout and linear backoff
// between attempts.
type client struct {
	transport Transport
	target    string
	timeout   time.Duration
	attempts  int
	backoff   time.Duration
	enc       gnfmt.GNjson
}

func (c *client) call(ctx context.Context, req inference.Request, out any) error {
	payload, err := c.enc.Encode(req)
	if err != nil {
		return err
	}

	attempts := max(c.attempts, 1)
	for i := 1; ; i++ {
		err = c.once(ctx, payload, out)
		if err == nil {
			return nil
		}
		if i >= attempts || ctx.Err() != nil {
			return err
		}
		slog.Warn("Inference call failed, retrying",
			"target", c.target,
			"sample_id", req.SampleID,
			"attempt", i,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff * time.Duration(i)):
		}
	}
}

func (c *client) once(ctx context.Context, payload []byte, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	body, err := c.transport.Invoke(ctx, c.target, payload)
	if err != nil {
		return err
	}
	if err = c.enc.Decode(body, out); err != nil {
		return fmt.Errorf("cannot decode response: %w", err)
	}
	return nil
}

// detection mirrors the Stage-1 response, box_count is required.
type detection struct {
	AnnotatedImageURL string `json:"annotated_image_url"`
	BoxCount          *int   `json:"box_count"`
}

var errNoCount = errors.New("response has no box_count")

// Detector is the Stage-1 client.
type Detector struct {
	c *client
}

// Detect asks the model to count particles on the image.
func (d *Detector) Detect(
	ctx context.Context,
	req inference.Request,
) (inference.Detection, error) {
	var res detection
	if err := d.c.call(ctx, req, &res); err != nil {
		return inference.Detection{}, inference.DetectorError(req.SampleID, err)
	}
	if res.BoxCount == nil || *res.BoxCount < 0 {
		return inference.Detection{}, inference.DetectorError(req.SampleID, errNoCount)
	}
	return inference.Detection{
		AnnotatedImageURL: res.AnnotatedImageURL,
		BoxCount:          *res.BoxCount,
	}, nil
}

// Classifier is the Stage-2 client.
type Classifier struct {
	c *client
}

// Classify asks the model for polymer percents. Keys missing from the
// response stay nil.
func (cl *Classifier) Classify(
	ctx context.Context,
	req inference.Request,
) (inference.Composition, error) {
	var res inference.Composition
	if err := cl.c.call(ctx, req, &res); err != nil {
		return inference.Composition{}, inference.ClassifierError(req.SampleID, err)
	}
	return res, nil
}
