package bootloader

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/wormhole-foundation/stone-prover-sdk/artifacts"
	"github.com/wormhole-foundation/stone-prover-sdk/tasks"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

const (
	ProgramIdentifiersScopeKey = "bootloader_program_identifiers"
	ProgramScopeKey            = "bootloader_program"

	retPcLabelIdentifier = "starkware.cairo.bootloaders.simple_bootloader.execute_task.execute_task.ret_pc_label"
	callTaskIdentifier   = "starkware.cairo.bootloaders.simple_bootloader.execute_task.execute_task.call_task"
)

// DefaultLayout is used for bootloader runs that do not pick one.
const DefaultLayout = types.LayoutStarknetWithKeccak

// Options tunes a bootloader run. The zero value is valid.
type Options struct {
	// Layout defaults to DefaultLayout.
	Layout               *types.Layout
	AllowMissingBuiltins *bool
	FactTopologiesPath   string
}

func proofModeConfig(layout types.Layout, allowMissingBuiltins *bool) vm.RunConfig {
	return vm.RunConfig{
		Entrypoint:           "main",
		TraceEnabled:         true,
		RelocateMem:          true,
		Layout:               layout,
		ProofMode:            true,
		SecureRun:            nil,
		DisableTracePadding:  false,
		AllowMissingBuiltins: allowMissingBuiltins,
	}
}

// RunInProofMode runs a compiled program in proof mode. Failures are
// reported as artifacts.ExecutionError with kind RunFailed.
func RunInProofMode(ctx context.Context, runner vm.Runner, programContent []byte, layout types.Layout, allowMissingBuiltins *bool) (vm.Handle, error) {
	program, err := vm.ParseProgram(programContent, "main")
	if err != nil {
		return nil, artifacts.WrapRunFailure(err)
	}

	log.Debug().Str("layout", layout.String()).Msg("running program in proof mode")
	handle, err := runner.RunProgram(ctx, program, proofModeConfig(layout, allowMissingBuiltins), vm.NewExecutionScopes())
	if err != nil {
		return nil, artifacts.WrapRunFailure(err)
	}
	return handle, nil
}

// ExecuteInProofMode runs a compiled program in proof mode and extracts its
// artifacts.
func ExecuteInProofMode(ctx context.Context, runner vm.Runner, programContent []byte, layout types.Layout, allowMissingBuiltins *bool) (*artifacts.ExecutionArtifacts, error) {
	handle, err := RunInProofMode(ctx, runner, programContent, layout, allowMissingBuiltins)
	if err != nil {
		return nil, err
	}
	return artifacts.Extract(handle)
}

// NewBootloaderInput wraps a task list with the fixed bootloader
// configuration: a zero program hash, no verifier hashes and one plain packed
// output per task.
func NewBootloaderInput(taskList []tasks.TaskSpec, factTopologiesPath string) *BootloaderInput {
	return &BootloaderInput{
		SimpleBootloaderInput: SimpleBootloaderInput{
			FactTopologiesPath: factTopologiesPath,
			SinglePage:         false,
			Tasks:              taskList,
		},
		BootloaderConfig: BootloaderConfig{
			SupportedCairoVerifierProgramHashes: []vm.Felt{},
		},
		PackedOutputs: make([]PackedOutput, len(taskList)),
	}
}

// ProgramIdentifiers returns the bootloader labels its hints look up.
func ProgramIdentifiers() map[string]uint64 {
	return map[string]uint64{
		retPcLabelIdentifier: 10,
		callTaskIdentifier:   8,
	}
}

// RunBootloaderInProofMode runs the bootloader over taskList and extracts the
// artifacts of the combined run.
func RunBootloaderInProofMode(ctx context.Context, runner vm.Runner, bootloader *vm.Program, taskList []tasks.TaskSpec, opts Options) (*artifacts.ExecutionArtifacts, error) {
	layout := DefaultLayout
	if opts.Layout != nil {
		layout = *opts.Layout
	}

	scopes := vm.NewExecutionScopes()
	scopes.InsertValue(vm.BootloaderInputScopeKey, NewBootloaderInput(taskList, opts.FactTopologiesPath))
	scopes.InsertValue(ProgramIdentifiersScopeKey, ProgramIdentifiers())
	scopes.InsertValue(ProgramScopeKey, bootloader)

	log.Debug().Str("layout", layout.String()).Int("tasks", len(taskList)).Msg("running bootloader in proof mode")
	handle, err := runner.RunProgram(ctx, bootloader, proofModeConfig(layout, opts.AllowMissingBuiltins), scopes)
	if err != nil {
		return nil, artifacts.WrapRunFailure(err)
	}

	return artifacts.Extract(handle)
}
