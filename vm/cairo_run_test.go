package vm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wormhole-foundation/stone-prover-sdk/command"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

// fakeCairoRun stands in for cairo-run: it records its arguments and copies
// the output files from $FIXTURE_DIR.
const fakeCairoRun = `#!/bin/sh
printf '%s\n' "$@" > "$FIXTURE_DIR/args.txt"
while [ $# -gt 0 ]; do
	case "$1" in
	--memory_file) cp "$FIXTURE_DIR/memory.bin" "$2"; shift ;;
	--trace_file) cp "$FIXTURE_DIR/trace.bin" "$2"; shift ;;
	--air_public_input) cp "$FIXTURE_DIR/air_public_input.json" "$2"; shift ;;
	--air_private_input) cp "$FIXTURE_DIR/air_private_input.json" "$2"; shift ;;
	--program_input) cp "$2" "$FIXTURE_DIR/program_input.json"; shift ;;
	esac
	shift
done
`

type staticProgramInput []byte

func (s staticProgramInput) ProgramInput(string) ([]byte, error) {
	return s, nil
}

func setupFakeCairoRun(t *testing.T) (*CairoRunRunner, string) {
	t.Helper()
	fixtureDir := t.TempDir()
	t.Setenv("FIXTURE_DIR", fixtureDir)

	binary := filepath.Join(t.TempDir(), "cairo-run")
	require.NoError(t, os.WriteFile(binary, []byte(fakeCairoRun), 0o755))

	var memory, trace []byte
	memory = append(memory, memoryRecord(1, 0x40780017fff7fff)...)
	memory = append(memory, memoryRecord(2, 4)...)
	memory = append(memory, memoryRecord(5, 0x90)...)
	trace = append(trace, traceRecord(5, 5, 1)...)
	trace = append(trace, traceRecord(6, 5, 3)...)
	require.NoError(t, os.WriteFile(filepath.Join(fixtureDir, "memory.bin"), memory, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fixtureDir, "trace.bin"), trace, 0o644))

	for _, name := range []string{"air_public_input.json", "air_private_input.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(fixtureDir, name), readFixture(t, name), 0o644))
	}

	return &CairoRunRunner{Binary: binary, TempDir: t.TempDir()}, fixtureDir
}

func proofModeConfig() RunConfig {
	return RunConfig{
		Entrypoint:   "main",
		TraceEnabled: true,
		RelocateMem:  true,
		Layout:       types.LayoutStarknetWithKeccak,
		ProofMode:    true,
	}
}

func TestCairoRunRunnerProofMode(t *testing.T) {
	runner, fixtureDir := setupFakeCairoRun(t)
	program, err := ParseProgram(readFixture(t, "fibonacci_compiled.json"), "main")
	require.NoError(t, err)

	scopes := NewExecutionScopes()
	scopes.InsertValue(BootloaderInputScopeKey, staticProgramInput(`{"tasks":[]}`))

	handle, err := runner.RunProgram(context.Background(), program, proofModeConfig(), scopes)
	require.NoError(t, err)

	memory := handle.RelocatedMemory()
	require.Len(t, memory, 3)
	require.Equal(t, uint64(5), memory[2].Address)

	trace, ok := handle.RelocatedTrace()
	require.True(t, ok)
	require.Equal(t, []TraceEntry{{Pc: 1, Ap: 5, Fp: 5}, {Pc: 3, Ap: 6, Fp: 5}}, trace)

	view, err := handle.AirPublicInput()
	require.NoError(t, err)
	publicInput, err := types.PublicInputFromView(view)
	require.NoError(t, err)
	require.Equal(t, uint32(32768), publicInput.NSteps)

	privateInput := handle.AirPrivateInput()
	require.Contains(t, privateInput, "range_check")
	require.NotContains(t, privateInput, "trace_path")

	programInput, err := os.ReadFile(filepath.Join(fixtureDir, "program_input.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"tasks":[]}`, string(programInput))

	// The per-run directory is gone once the handle is loaded.
	entries, err := os.ReadDir(runner.TempDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCairoRunRunnerWithoutTrace(t *testing.T) {
	runner, fixtureDir := setupFakeCairoRun(t)
	program, err := ParseProgram(readFixture(t, "fibonacci_compiled.json"), "main")
	require.NoError(t, err)

	handle, err := runner.RunProgram(context.Background(), program, RunConfig{
		Entrypoint:  "main",
		RelocateMem: true,
		Layout:      types.LayoutPlain,
	}, nil)
	require.NoError(t, err)

	_, ok := handle.RelocatedTrace()
	require.False(t, ok)
	_, err = handle.AirPublicInput()
	require.Error(t, err)

	args, err := os.ReadFile(filepath.Join(fixtureDir, "args.txt"))
	require.NoError(t, err)
	require.NotContains(t, string(args), "--proof_mode")
	require.NotContains(t, string(args), "--program_input")
}

func TestCairoRunRunnerFailure(t *testing.T) {
	program, err := ParseProgram(readFixture(t, "fibonacci_compiled.json"), "main")
	require.NoError(t, err)

	binary := filepath.Join(t.TempDir(), "cairo-run")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\necho 'unknown builtin' >&2\nexit 1\n"), 0o755))

	runner := &CairoRunRunner{Binary: binary}
	_, err = runner.RunProgram(context.Background(), program, proofModeConfig(), nil)

	var cmdErr *command.Error
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 1, cmdErr.ExitCode)
	require.Contains(t, cmdErr.Stderr, "unknown builtin")
}

func TestCairoRunRunnerUnsupportedConfig(t *testing.T) {
	program, err := ParseProgram(readFixture(t, "fibonacci_compiled.json"), "main")
	require.NoError(t, err)
	runner := &CairoRunRunner{Binary: "/nonexistent/cairo-run"}

	config := proofModeConfig()
	config.Entrypoint = "fib"
	_, err = runner.RunProgram(context.Background(), program, config, nil)
	require.ErrorIs(t, err, ErrUnsupportedConfig)

	config = proofModeConfig()
	config.RelocateMem = false
	_, err = runner.RunProgram(context.Background(), program, config, nil)
	require.ErrorIs(t, err, ErrUnsupportedConfig)

	scopes := NewExecutionScopes()
	scopes.InsertValue(BootloaderInputScopeKey, 12)
	_, err = runner.RunProgram(context.Background(), program, proofModeConfig(), scopes)
	require.ErrorIs(t, err, ErrUnsupportedConfig)
}

func TestCairoRunArgs(t *testing.T) {
	files := newRunFiles("/run")
	enabled := true

	config := proofModeConfig()
	config.SecureRun = &enabled
	config.AllowMissingBuiltins = &enabled
	config.DisableTracePadding = true

	args := cairoRunArgs(config, files, true)
	require.Equal(t, strings.Join([]string{
		"--program", "/run/program.json",
		"--layout", "starknet_with_keccak",
		"--proof_mode",
		"--air_public_input", "/run/air_public_input.json",
		"--air_private_input", "/run/air_private_input.json",
		"--memory_file", "/run/memory.bin",
		"--trace_file", "/run/trace.bin",
		"--program_input", "/run/program_input.json",
		"--secure_run",
		"--disable_trace_padding",
		"--allow_missing_builtins",
	}, " "), strings.Join(args, " "))

	disabled := false
	args = cairoRunArgs(RunConfig{Layout: types.LayoutSmall, SecureRun: &disabled}, files, false)
	require.Equal(t, []string{"--program", "/run/program.json", "--layout", "small"}, args)
}
