package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Error is returned when an external program exits unsuccessfully or cannot
// be started at all.
type Error struct {
	Binary   string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s failed (exit code %d): %v", e.Binary, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s failed (exit code %d): %v: %s", e.Binary, e.ExitCode, e.Err, stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run executes binary with args and returns its standard output.
func Run(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug().Str("binary", binary).Strs("args", args).Msg("running command")
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, &Error{
			Binary:   binary,
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	log.Debug().Str("binary", binary).Dur("elapsed", elapsed).Msg("command finished")

	return stdout.Bytes(), nil
}
