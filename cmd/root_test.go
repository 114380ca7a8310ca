package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "sampler", cmd.Use,
		"Command name should be sampler")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()

	// Set a test version
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "sampler",
		"Help should mention sampler")
	assert.Contains(t, helpText, "GPS",
		"Help should mention GPS")
	assert.Contains(t, helpText, "capture",
		"Help should list capture command")
	assert.Contains(t, helpText, "serve",
		"Help should list serve command")
	assert.Contains(t, helpText, "--config",
		"Help should mention --config flag")
}

// TestGetRootCmd_ShortDescription verifies
// short description.
func TestGetRootCmd_ShortDescription(t *testing.T) {
	cmd := getRootCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "microplastic",
		"Short description should mention microplastic")
}

// TestGetRootCmd_LongDescription verifies
// long description.
func TestGetRootCmd_LongDescription(t *testing.T) {
	cmd := getRootCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "object store",
		"Long description should mention object store")
	assert.Contains(t, cmd.Long, "sample ID",
		"Long description should mention sample ID")
	assert.Contains(t, cmd.Long, "SAMPLER_",
		"Long description should mention environment variables")
}

// TestGetRootCmd_HasPreRun verifies bootstrap
// function is set.
func TestGetRootCmd_HasPreRun(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
}

// TestGetRootCmd_HasRunE verifies root has a run function.
// This is needed to handle the version flag after bootstrap.
func TestGetRootCmd_HasRunE(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set to handle version flag")
}

// TestGetRootCmd_ErrorSilencing verifies error and
// usage silencing.
func TestGetRootCmd_ErrorSilencing(t *testing.T) {
	cmd := getRootCmd()

	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestGetRootCmd_VersionTemplate verifies custom version template.
func TestGetRootCmd_VersionTemplate(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "test-version"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	// Should not have "sampler version" prefix due to
	// custom template
	assert.NotContains(t, output, "sampler version:",
		"Should use custom version template")
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	// Should be different instances
	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	// Modifying one shouldn't affect the other
	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	assert.Error(t, err,
		"Should error on invalid command")
	output := buf.String()
	assert.True(t,
		strings.Contains(output, "unknown") ||
			strings.Contains(output, "invalid") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

// TestGetRootCmd_Subcommands verifies all subcommands
// are registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	for _, name := range []string{
		"capture", "serve", "locate", "create", "config",
	} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

// TestEnvName verifies mapping of configuration keys to
// environment variables.
func TestEnvName(t *testing.T) {
	tests := []struct {
		key, env string
	}{
		{"gps.port", "SAMPLER_GPS_PORT"},
		{"sample_store.backend", "SAMPLER_SAMPLE_STORE_BACKEND"},
		{"inference.detector_url", "SAMPLER_INFERENCE_DETECTOR_URL"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.env, envName(tt.key))
	}
}

// TestInitConfig_Env verifies environment variables
// override config.yaml.
func TestInitConfig_Env(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "gps:\n  port: /dev/ttyAMA0\nserver:\n  port: 6000\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	t.Setenv("SAMPLER_SERVER_PORT", "7000")
	t.Setenv("SAMPLER_SAMPLE_STORE_BACKEND", "sqlite")
	t.Setenv("SAMPLER_INFERENCE_TIMEOUT", "15s")

	res, err := initConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyAMA0", res.GPS.Port)
	assert.Equal(t, 7000, res.Server.Port)
	assert.Equal(t, "sqlite", res.SampleStore.Backend)
	assert.Equal(t, 15*time.Second, res.Inference.Timeout)
}

// TestInitConfig_Missing verifies a missing file is an error.
func TestInitConfig_Missing(t *testing.T) {
	_, err := initConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
