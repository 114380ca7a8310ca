// Package ioinfer implements the Stage-1 and Stage-2 inference clients
// over plain HTTP or the SageMaker runtime.
package ioinfer

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/mpsense/sampler/internal/ioaws"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/mpsense/sampler/pkg/inference"
)

// New builds both clients for the configured transport. A stage without
// a target yields a nil client, the orchestrator reports it as failed.
func New(
	ctx context.Context,
	cfg *config.Config,
) (inference.Detector, inference.Classifier, error) {
	var tr Transport
	var detTarget, clsTarget string

	switch cfg.Inference.Transport {
	case "sagemaker":
		awsCfg, err := ioaws.Load(ctx, cfg.AWS)
		if err != nil {
			return nil, nil, err
		}
		tr = SageMakerTransport{Client: sagemakerruntime.NewFromConfig(awsCfg)}
		detTarget = cfg.Inference.DetectorEndpoint
		clsTarget = cfg.Inference.ClassifierEndpoint
	case "http", "":
		tr = HTTPTransport{Client: &http.Client{}}
		detTarget = cfg.Inference.DetectorURL
		clsTarget = cfg.Inference.ClassifierURL
	default:
		return nil, nil, TransportError(cfg.Inference.Transport)
	}

	det, cls := NewWithTransport(tr, detTarget, clsTarget, cfg.Inference)
	return det, cls, nil
}

// NewWithTransport builds the clients around an existing transport.
func NewWithTransport(
	tr Transport,
	detTarget, clsTarget string,
	cfg config.InferenceConfig,
) (inference.Detector, inference.Classifier) {
	var (
		det inference.Detector
		cls inference.Classifier
	)
	if detTarget != "" {
		det = &Detector{c: newClient(tr, detTarget, cfg)}
	}
	if clsTarget != "" {
		cls = &Classifier{c: newClient(tr, clsTarget, cfg)}
	}
	return det, cls
}

func newClient(tr Transport, target string, cfg config.InferenceConfig) *client {
	return &client{
		transport: tr,
		target:    target,
		timeout:   cfg.Timeout,
		attempts:  cfg.Attempts,
		backoff:   cfg.Backoff,
	}
}
