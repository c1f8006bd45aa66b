package artifacts

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTraceNotEnabled is returned when the run did not record a trace. A
// missing trace is never reported as an empty one.
var ErrTraceNotEnabled = errors.New("trace not enabled")

// ErrorKind tells which phase of a proof-mode run failed.
type ErrorKind int

const (
	RunFailed ErrorKind = iota
	GeneratePublicInput
	GenerateTrace
	EncodeMemory
	EncodeTrace
	SerializePublicInput
)

func (k ErrorKind) String() string {
	switch k {
	case RunFailed:
		return "run failed"
	case GeneratePublicInput:
		return "failed to generate public input"
	case GenerateTrace:
		return "failed to generate trace"
	case EncodeMemory:
		return "failed to encode memory"
	case EncodeTrace:
		return "failed to encode trace"
	case SerializePublicInput:
		return "failed to serialize public input"
	}
	return fmt.Sprintf("execution error %d", int(k))
}

// ExecutionError wraps the cause of a failed run or extraction with the
// phase that produced it. The cause is kept unmodified.
type ExecutionError struct {
	Kind ErrorKind
	Err  error
}

func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is matches any *ExecutionError of the same kind, so callers can write
// errors.Is(err, &ExecutionError{Kind: EncodeTrace}).
func (e *ExecutionError) Is(target error) bool {
	t, ok := target.(*ExecutionError)
	return ok && t.Kind == e.Kind
}

func newExecutionError(kind ErrorKind, err error) error {
	return &ExecutionError{Kind: kind, Err: err}
}

// WrapRunFailure tags an error from the VM itself. The original error stays
// reachable through errors.Unwrap.
func WrapRunFailure(err error) error {
	if err == nil {
		return nil
	}
	return newExecutionError(RunFailed, err)
}
