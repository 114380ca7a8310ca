/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/internal/iobroker"
	"github.com/mpsense/sampler/internal/iocamera"
	"github.com/mpsense/sampler/internal/iodb"
	"github.com/mpsense/sampler/internal/iodynamo"
	"github.com/mpsense/sampler/internal/ioinfer"
	"github.com/mpsense/sampler/internal/iometrics"
	"github.com/mpsense/sampler/internal/ios3"
	"github.com/mpsense/sampler/internal/ioserial"
	"github.com/mpsense/sampler/internal/iosqlite"
	"github.com/mpsense/sampler/pkg/capture"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/mpsense/sampler/pkg/inference"
	"github.com/mpsense/sampler/pkg/sample"
)

// sampleStore is a sample.Store holding a connection.
type sampleStore interface {
	sample.Store
	io.Closer
}

// pipeline is a Controller together with the resources it holds.
type pipeline struct {
	ctrl    *capture.Controller
	closers []io.Closer
}

// Close releases resources in reverse order of creation.
func (p *pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i].Close(); err != nil {
			slog.Warn("Cannot release resource", "error", err)
		}
	}
}

// newPipeline connects every collaborator of a capture. Metrics are
// registered only when withMetrics is true, the HTTP server exposes them.
func newPipeline(
	ctx context.Context,
	cfg *config.Config,
	withMetrics bool,
) (*pipeline, error) {
	res := &pipeline{}

	objects, err := ios3.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res.closers = append(res.closers, store)

	det, cls, err := ioinfer.New(ctx, cfg)
	if err != nil {
		res.Close()
		return nil, err
	}
	for _, w := range stageWarnings(det, cls) {
		gn.Warn("%s", w)
	}

	ctrlOpts := []capture.Option{
		capture.OptTempDir(config.CacheDir(cfg.HomeDir)),
	}

	if !cfg.Capture.SkipLocation {
		ctrlOpts = append(ctrlOpts,
			capture.OptLocator(ioserial.New(cfg.GPS, ioserial.OpenSerial)))
	}

	if cfg.Broker.URL != "" {
		pub, err := iobroker.Dial(cfg.Broker)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.closers = append(res.closers, pub)
		ctrlOpts = append(ctrlOpts, capture.OptNotifier(pub))
	}

	if withMetrics {
		iometrics.Register()
		ctrlOpts = append(ctrlOpts, capture.OptRecorder(iometrics.NewRecorder()))
	}

	res.ctrl = capture.New(
		cfg,
		iocamera.New(cfg.Camera, nil),
		objects,
		store,
		inference.New(det, cls),
		ctrlOpts...,
	)
	return res, nil
}

// stageWarnings tells what records lack when an inference stage has no
// target.
func stageWarnings(det inference.Detector, cls inference.Classifier) []string {
	var res []string
	if det == nil {
		res = append(res, "Stage-1 detector is not configured, records will "+
			"have no annotatedImageURL, boxCount, density or percent_* fields")
		return res
	}
	if cls == nil {
		res = append(res, "Stage-2 classifier is not configured, records "+
			"with boxCount above 0 will have no percent_* fields")
	}
	return res
}

// openStore connects to the configured sample store backend.
func openStore(ctx context.Context, cfg *config.Config) (sampleStore, error) {
	timeout := cfg.SampleStore.Timeout
	switch cfg.SampleStore.Backend {
	case "postgres":
		op := iodb.NewPgxOperator()
		if err := op.Connect(ctx, &cfg.Database); err != nil {
			return nil, err
		}
		return iodb.NewStore(op, timeout), nil
	case "sqlite":
		st, err := iosqlite.Open(ctx, cfg.SQLitePath(), timeout)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		st, err := iodynamo.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
}
