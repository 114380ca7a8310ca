package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetServeCmd_Exists verifies getServeCmd returns
// a valid command.
func TestGetServeCmd_Exists(t *testing.T) {
	cmd := getServeCmd()
	require.NotNil(t, cmd, "Serve command should exist")
	assert.Equal(t, "serve", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetServeCmd_PortFlag verifies --port flag exists.
func TestGetServeCmd_PortFlag(t *testing.T) {
	cmd := getServeCmd()

	flag := cmd.Flags().Lookup("port")
	require.NotNil(t, flag, "--port flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "5000", flag.DefValue)
}

// TestGetServeCmd_HelpText verifies endpoints are documented.
func TestGetServeCmd_HelpText(t *testing.T) {
	cmd := getServeCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	for _, s := range []string{"POST /capture", "GET  /health",
		"GET  /metrics", "503", "Examples:"} {
		assert.Contains(t, helpText, s)
	}
}
