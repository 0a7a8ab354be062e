package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(args ...string) (string, error) {
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	out, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "report")
	assert.Contains(t, out, "set-password")
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := executeCommand("--format", "xml", "report", "--from", "2025-06-01", "--to", "2025-06-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestReportCommand_RequiresDates(t *testing.T) {
	_, err := executeCommand("report")
	require.Error(t, err)
}

func TestReportCommand_RejectsBadDates(t *testing.T) {
	_, err := executeCommand("report", "--from", "June 1st", "--to", "2025-06-30")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = executeCommand("report", "--from", "2025-06-30", "--to", "2025-06-01")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
