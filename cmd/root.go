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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/mpsense/sampler/internal/iofs"
	"github.com/mpsense/sampler/internal/iologger"
	app "github.com/mpsense/sampler/pkg"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	cfgFile   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "sampler",
		Short:   "Sampler captures and analyzes microplastic samples",
		Long: `Sampler runs on a field device with a camera and a GPS receiver.

Each capture takes a still image, uploads it to the object store,
runs detection and classification, stamps the result with a GPS fix
and stores it as a sample record with a fresh sample ID.

Commands:
  capture  run one or more captures from the command line
  serve    accept capture triggers over HTTP
  locate   read one GPS fix
  create   prepare the sample store
  config   show the effective configuration

Settings come from ~/.config/sampler/config.yaml, a .env file in the
working directory and SAMPLER_* environment variables.`,
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: cleanup,
		RunE:               runRoot,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	// Remove the automatic "sampler version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for sampler")

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"path to config file (default ~/.config/sampler/config.yaml)")

	rootCmd.AddCommand(
		getCaptureCmd(),
		getServeCmd(),
		getLocateCmd(),
		getCreateCmd(),
		getConfigCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// .env is optional, variables already set in the environment win
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		gn.Warn("Cannot load <em>.env</em>: %s", err)
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	// the serve command keeps log history across restarts
	appendLog := cmd.Name() == "serve"
	if logCloser, err = iologger.Init(
		config.LogDir(homeDir), defaultLog, appendLog,
	); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgPath := cfgFile
	if cfgPath == "" {
		cfgPath = config.ConfigFilePath(homeDir)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(cfgPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", cfgPath,
		"command", cmd.Name(),
	)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration. The previous log file is released first.
func reconfigureLogging(cfg *config.Config) error {
	if logCloser != nil {
		_ = logCloser.Close()
	}
	var err error
	// the default logger already prepared the file, keep what it wrote
	logCloser, err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	return err
}

func cleanup(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envKeys lists configuration keys that can be set from environment.
// They match the fields included in config.ToOptions(), the persistent
// configuration that can be stored in config.yaml. SAMPLER_GPS_PORT
// sets gps.port and so on.
var envKeys = []string{
	"camera.command",
	"camera.width",
	"camera.height",
	"camera.warmup",

	"gps.port",
	"gps.baud_rate",
	"gps.read_timeout",
	"gps.timeout",

	"area.center_latitude",
	"area.center_longitude",
	"area.min_latitude",
	"area.max_latitude",
	"area.min_longitude",
	"area.max_longitude",

	"aws.region",

	"object_store.bucket",
	"object_store.prefix",
	"object_store.endpoint",
	"object_store.timeout",

	"sample_store.backend",
	"sample_store.table",
	"sample_store.sqlite_path",
	"sample_store.timeout",

	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",

	"inference.transport",
	"inference.detector_url",
	"inference.classifier_url",
	"inference.detector_endpoint",
	"inference.classifier_endpoint",
	"inference.timeout",
	"inference.attempts",
	"inference.backoff",

	"capture.id_strategy",
	"capture.max_id_attempts",

	"server.port",

	"broker.url",
	"broker.exchange",
	"broker.routing_key",

	"log.level",
	"log.format",
	"log.destination",
}

// envName converts a configuration key to its environment variable.
func envName(key string) string {
	return "SAMPLER_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func initEnvVars(v *viper.Viper) {
	// We bind variables one by one so it is clear which ones are allowed.
	v.SetEnvPrefix("SAMPLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		_ = v.BindEnv(key, envName(key))
	}

	v.AutomaticEnv()
}
