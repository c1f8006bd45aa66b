package vm

import (
	"context"
	"encoding/json"

	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

// RunConfig mirrors the options the VM accepts for a single run.
type RunConfig struct {
	Entrypoint           string
	TraceEnabled         bool
	RelocateMem          bool
	Layout               types.Layout
	ProofMode            bool
	SecureRun            *bool
	DisableTracePadding  bool
	AllowMissingBuiltins *bool
}

// Runner runs a program to completion.
//
// Implementations must not keep scopes after RunProgram returns; every run
// gets its own.
type Runner interface {
	RunProgram(ctx context.Context, program *Program, config RunConfig, scopes *ExecutionScopes) (Handle, error)
}

// Handle exposes the relocated results of a finished run. A handle belongs
// to a single run and is not safe for concurrent use.
type Handle interface {
	RelocatedMemory() Memory
	// RelocatedTrace reports false when the run did not record a trace.
	RelocatedTrace() ([]TraceEntry, bool)
	// AirPublicInput returns the VM's public input. Its only guaranteed
	// capability is rendering itself as JSON.
	AirPublicInput() (json.Marshaler, error)
	AirPrivateInput() types.AirPrivateInput
}
