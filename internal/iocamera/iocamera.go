// Package iocamera takes stills with a libcamera still-capture program
// (rpicam-still on Raspberry Pi OS).
package iocamera

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mpsense/sampler/pkg/capture"
	"github.com/mpsense/sampler/pkg/config"
)

// Runner executes a program and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Camera gives out one handle at a time.
type Camera struct {
	cfg  config.CameraConfig
	run  Runner
	lock chan struct{}
}

// New creates a Camera. A nil runner executes real programs.
func New(cfg config.CameraConfig, run Runner) *Camera {
	if run == nil {
		run = execRunner
	}
	return &Camera{cfg: cfg, run: run, lock: make(chan struct{}, 1)}
}

// Acquire waits until the camera is free or ctx is done.
func (c *Camera) Acquire(ctx context.Context) (capture.CameraHandle, error) {
	select {
	case c.lock <- struct{}{}:
	case <-ctx.Done():
		return nil, BusyError(ctx.Err())
	}
	return &handle{cam: c}, nil
}

type handle struct {
	cam    *Camera
	closed bool
}

// Capture writes one JPEG still to path.
func (h *handle) Capture(ctx context.Context, path string) error {
	if h.closed {
		return CameraError(h.cam.cfg.Command, errClosed)
	}
	cfg := h.cam.cfg
	warmup := max(cfg.Warmup.Milliseconds(), 1)
	args := []string{
		"--nopreview",
		"--timeout", strconv.FormatInt(warmup, 10),
		"--width", strconv.Itoa(cfg.Width),
		"--height", strconv.Itoa(cfg.Height),
		"--encoding", "jpg",
		"--output", path,
	}
	slog.Debug("Running camera", "command", cfg.Command,
		"args", strings.Join(args, " "))

	out, err := h.cam.run(ctx, cfg.Command, args...)
	if err != nil {
		return CameraError(cfg.Command,
			fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out))))
	}
	return nil
}

// Close releases the camera. Closing twice is a no-op.
func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	<-h.cam.lock
	return nil
}
