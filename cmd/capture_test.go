package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCaptureCmd_Exists verifies getCaptureCmd returns
// a valid command.
func TestGetCaptureCmd_Exists(t *testing.T) {
	cmd := getCaptureCmd()
	require.NotNil(t, cmd, "Capture command should exist")
	assert.Equal(t, "capture", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetCaptureCmd_Flags verifies flags and their defaults.
func TestGetCaptureCmd_Flags(t *testing.T) {
	cmd := getCaptureCmd()

	tests := []struct {
		name, short, def string
	}{
		{"repeat", "n", "1"},
		{"interval", "i", "0s"},
		{"no-gps", "", "false"},
		{"gps-port", "", ""},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.short, flag.Shorthand, tt.name)
		assert.Equal(t, tt.def, flag.DefValue, tt.name)
	}
}

// TestGetCaptureCmd_HelpText verifies help text content.
func TestGetCaptureCmd_HelpText(t *testing.T) {
	cmd := getCaptureCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "Examples:")
	assert.Contains(t, helpText, "sampler capture --no-gps")
	assert.Contains(t, helpText, "--repeat")
	assert.Contains(t, helpText, "classification")
}
