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
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/mpsense/sampler/pkg/capture"
	"github.com/spf13/cobra"
)

// outcomeView is the printed form of one capture.
type outcomeView struct {
	Status string `json:"status"`
	capture.Outcome
	Error string `json:"error,omitempty"`
}

// getCaptureCmd returns the capture command.
func getCaptureCmd() *cobra.Command {
	var (
		repeat   int
		interval time.Duration
	)

	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture and analyze samples",
		Long: `Capture one or more samples from the command line.

Each capture:
  1. Takes a still image and uploads it to the object store
  2. Allocates the next sample ID from the sample store
  3. Runs detection and, when particles are found, classification
  4. Reads a GPS fix, falling back to the area center
  5. Stores the sample record and announces it to the broker

Results are printed as JSON, one document per capture.

Examples:
  sampler capture
  sampler capture --no-gps
  sampler capture --repeat 10 --interval 30s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, noGPSFlag, gpsPortFlag)
			return runCapture(cmd, repeat, interval)
		},
	}

	captureCmd.Flags().IntVarP(&repeat, "repeat", "n", 1,
		"number of captures to run")
	captureCmd.Flags().DurationVarP(&interval, "interval", "i", 0,
		"pause between repeated captures")
	captureCmd.Flags().Bool("no-gps", false,
		"skip the GPS receiver and use the area center")
	captureCmd.Flags().String("gps-port", "",
		"serial device of the GPS receiver")

	return captureCmd
}

func runCapture(
	cmd *cobra.Command,
	repeat int,
	interval time.Duration,
) error {
	if repeat < 1 {
		repeat = 1
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	p, err := newPipeline(ctx, cfg, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer p.Close()

	var bar *pb.ProgressBar
	if repeat > 1 {
		bar = pb.Full.Start(repeat)
		bar.Set("prefix", "captures ")
		defer bar.Finish()
	}

	enc := gnfmt.GNjson{Pretty: true}
	var lastErr error
	var failed int
	for i := range repeat {
		if i > 0 && interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}

		out, err := p.ctrl.Capture(ctx)
		view := outcomeView{Status: out.Status(), Outcome: out}
		if err != nil {
			lastErr = err
			failed++
			view.Error = err.Error()
		}

		bs, encErr := enc.Encode(view)
		if encErr != nil {
			return encErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bs))

		if bar != nil {
			bar.Increment()
		}
		if ctx.Err() != nil {
			break
		}
	}

	if lastErr != nil {
		if repeat > 1 {
			gn.Warn("<em>%d</em> of %d captures failed", failed, repeat)
		}
		gn.PrintErrorMessage(lastErr)
		return lastErr
	}
	return nil
}
