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
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/mpsense/sampler/internal/ioserial"
	"github.com/mpsense/sampler/pkg/area"
	"github.com/mpsense/sampler/pkg/nmea"
	"github.com/mpsense/sampler/pkg/sample"
	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/cobra"
)

// getLocateCmd returns the locate command.
func getLocateCmd() *cobra.Command {
	locateCmd := &cobra.Command{
		Use:   "locate",
		Short: "Read one GPS fix",
		Long: `Read the GPS receiver until the first valid fix and print it
as a GeoJSON point feature.

When no fix arrives in time the area center is printed instead,
with "source" set to "fallback". Use it to check wiring and antenna
placement before a deployment.

Examples:
  sampler locate
  sampler locate --timeout 2m --gps-port /dev/ttyUSB0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, gpsTimeoutFlag, gpsPortFlag)
			return runLocate(cmd)
		},
	}

	locateCmd.Flags().DurationP("timeout", "t", 0,
		"time budget for a fix (default from config)")
	locateCmd.Flags().String("gps-port", "",
		"serial device of the GPS receiver")

	return locateCmd
}

func runLocate(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	fix, ok, err := ioserial.New(cfg.GPS, ioserial.OpenSerial).Locate(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !ok {
		gn.Warn("No GPS fix in <em>%s</em>, showing area center", cfg.GPS.Timeout)
	}

	feat := locationFeature(fix, ok, area.New(cfg.Area))
	bs, err := gnfmt.GNjson{Pretty: true}.Encode(feat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bs))
	return nil
}

// locationFeature describes a fix relative to the study area. Without a
// fix the area center is used.
func locationFeature(fix nmea.Fix, ok bool, a area.Area) *geojson.Feature {
	if !ok {
		return a.Center.Feature(map[string]any{
			"source": string(sample.LocationFallback),
		})
	}

	p := area.Point{Latitude: fix.Latitude, Longitude: fix.Longitude}
	return p.Feature(map[string]any{
		"source":   string(sample.LocationGPS),
		"sentence": string(fix.Kind),
		"inArea":   a.Contains(p),
		"distance": math.Round(a.DistanceFromCenter(p)),
	})
}
