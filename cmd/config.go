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
	"net/url"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/mpsense/sampler/pkg/area"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getConfigCmd returns the config command.
func getConfigCmd() *cobra.Command {
	var showArea bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after config.yaml, .env and SAMPLER_*
environment variables are merged. Secrets are masked.

With --area the study area is printed as a GeoJSON polygon instead.

Examples:
  sampler config
  sampler config --area`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				bs  []byte
				err error
			)
			if showArea {
				bs, err = gnfmt.GNjson{Pretty: true}.Encode(area.New(cfg.Area).Feature())
			} else {
				bs, err = configYAML(cfg)
			}
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(bs))
			return nil
		},
	}

	configCmd.Flags().BoolVarP(&showArea, "area", "a", false,
		"print the study area as GeoJSON")

	return configCmd
}

// configYAML renders c with the database password and broker
// credentials masked.
func configYAML(c *config.Config) ([]byte, error) {
	res := *c
	if res.Database.Password != "" {
		res.Database.Password = "xxxxx"
	}
	if u, err := url.Parse(res.Broker.URL); err == nil && u.User != nil {
		res.Broker.URL = u.Redacted()
	}
	return yaml.Marshal(&res)
}
