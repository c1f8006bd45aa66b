package artifacts

import (
	"bytes"

	"github.com/rs/zerolog/log"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

// ExecutionArtifacts holds everything the prover needs from one run.
type ExecutionArtifacts struct {
	PublicInput  types.PublicInput
	PrivateInput types.AirPrivateInput
	Memory       []byte
	Trace        []byte
}

// Extract reads the results of a finished proof-mode run. It is called once
// per run; on failure nothing is returned.
func Extract(handle vm.Handle) (*ExecutionArtifacts, error) {
	trace, ok := handle.RelocatedTrace()
	if !ok {
		return nil, newExecutionError(GenerateTrace, ErrTraceNotEnabled)
	}
	memory := handle.RelocatedMemory()

	var memoryBuf, traceBuf bytes.Buffer
	if err := WriteEncodedMemory(&memoryBuf, memory); err != nil {
		return nil, newExecutionError(EncodeMemory, err)
	}
	if err := WriteEncodedTrace(&traceBuf, trace); err != nil {
		return nil, newExecutionError(EncodeTrace, err)
	}

	view, err := handle.AirPublicInput()
	if err != nil {
		return nil, newExecutionError(GeneratePublicInput, err)
	}
	publicInput, err := types.PublicInputFromView(view)
	if err != nil {
		return nil, newExecutionError(SerializePublicInput, err)
	}

	log.Debug().
		Int("memory_cells", len(memory)).
		Int("trace_entries", len(trace)).
		Uint32("n_steps", publicInput.NSteps).
		Msg("extracted execution artifacts")

	return &ExecutionArtifacts{
		PublicInput:  *publicInput,
		PrivateInput: handle.AirPrivateInput(),
		Memory:       memoryBuf.Bytes(),
		Trace:        traceBuf.Bytes(),
	}, nil
}
