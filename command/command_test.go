package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	out, err := Run(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	require.Equal(t, "hello", string(out))
}

func TestRunReportsExitCodeAndStderr(t *testing.T) {
	_, err := Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, 3, cmdErr.ExitCode)
	require.Equal(t, "boom\n", cmdErr.Stderr)
	require.Contains(t, err.Error(), "boom")
}

func TestRunMissingBinary(t *testing.T) {
	_, err := Run(context.Background(), "definitely-not-a-real-binary-name")

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, -1, cmdErr.ExitCode)
}
