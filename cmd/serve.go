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
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/internal/ioweb"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve capture triggers over HTTP",
		Long: `Start an HTTP server that runs a capture on request.

Endpoints:
  POST /capture  run one capture and return its outcome as JSON
  GET  /health   liveness probe
  GET  /metrics  Prometheus metrics

Only one capture runs at a time. A trigger that arrives while a
capture is in flight gets 503 right away.

Examples:
  sampler serve
  sampler serve --port 8080 --no-gps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, portFlag, noGPSFlag, gpsPortFlag)
			return runServe()
		},
	}

	serveCmd.Flags().IntP("port", "p", 5000, "port to listen on")
	serveCmd.Flags().Bool("no-gps", false,
		"skip the GPS receiver and use the area center")
	serveCmd.Flags().String("gps-port", "",
		"serial device of the GPS receiver")

	return serveCmd
}

func runServe() error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	p, err := newPipeline(ctx, cfg, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer p.Close()

	gn.Info("Listening on port <em>%d</em>", cfg.Server.Port)
	if err = ioweb.New(cfg.Server.Port, p.ctrl).Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
