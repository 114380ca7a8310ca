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
	"fmt"
	"os"

	app "github.com/mpsense/sampler/pkg"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag reads one command line flag and applies it to cfg.
type funcFlag func(cmd *cobra.Command)

func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	for _, f := range flags {
		f(cmd)
	}
}

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

func noGPSFlag(cmd *cobra.Command) {
	skip, _ := cmd.Flags().GetBool("no-gps")
	if skip {
		cfg.Update([]config.Option{config.OptCaptureSkipLocation(true)})
	}
}

func gpsPortFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("gps-port") {
		return
	}
	s, _ := cmd.Flags().GetString("gps-port")
	cfg.Update([]config.Option{config.OptGPSPort(s)})
}

func gpsTimeoutFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("timeout") {
		return
	}
	d, _ := cmd.Flags().GetDuration("timeout")
	cfg.Update([]config.Option{config.OptGPSTimeout(d)})
}

func portFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("port") {
		return
	}
	i, _ := cmd.Flags().GetInt("port")
	cfg.Update([]config.Option{config.OptServerPort(i)})
}

func backendFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("backend") {
		return
	}
	s, _ := cmd.Flags().GetString("backend")
	cfg.Update([]config.Option{config.OptSampleStoreBackend(s)})
}
