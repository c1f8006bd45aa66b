package vm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wormhole-foundation/stone-prover-sdk/command"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

// BootloaderInputScopeKey is the scope variable holding the bootloader input.
const BootloaderInputScopeKey = "bootloader_input"

var ErrUnsupportedConfig = errors.New("unsupported run configuration")

// ProgramInputProvider is implemented by scope values that cairo-run can only
// receive through its --program_input file. dir is a scratch directory that
// lives as long as the run.
type ProgramInputProvider interface {
	ProgramInput(dir string) ([]byte, error)
}

// CairoRunRunner runs programs with the cairo-run command line tool.
type CairoRunRunner struct {
	// Binary defaults to "cairo-run".
	Binary string
	// TempDir is where per-run directories are created; empty means the
	// system default.
	TempDir string
}

type runFiles struct {
	program      string
	programInput string
	memory       string
	trace        string
	publicInput  string
	privateInput string
}

func newRunFiles(dir string) runFiles {
	return runFiles{
		program:      filepath.Join(dir, "program.json"),
		programInput: filepath.Join(dir, "program_input.json"),
		memory:       filepath.Join(dir, "memory.bin"),
		trace:        filepath.Join(dir, "trace.bin"),
		publicInput:  filepath.Join(dir, "air_public_input.json"),
		privateInput: filepath.Join(dir, "air_private_input.json"),
	}
}

func (r *CairoRunRunner) binary() string {
	if r.Binary == "" {
		return "cairo-run"
	}
	return r.Binary
}

func (r *CairoRunRunner) RunProgram(ctx context.Context, program *Program, config RunConfig, scopes *ExecutionScopes) (Handle, error) {
	if config.Entrypoint != "" && config.Entrypoint != "main" {
		return nil, errors.Wrapf(ErrUnsupportedConfig, "entrypoint %q", config.Entrypoint)
	}
	if config.ProofMode && !config.RelocateMem {
		return nil, errors.Wrap(ErrUnsupportedConfig, "proof mode needs relocated memory")
	}

	dir, err := os.MkdirTemp(r.TempDir, "cairo-run-")
	if err != nil {
		return nil, errors.Wrap(err, "create run directory")
	}
	defer os.RemoveAll(dir)

	files := newRunFiles(dir)
	if err := os.WriteFile(files.program, program.Raw(), 0o644); err != nil {
		return nil, errors.Wrap(err, "write program")
	}

	hasProgramInput := false
	if scopes != nil {
		if value, ok := scopes.Get(BootloaderInputScopeKey); ok {
			provider, ok := value.(ProgramInputProvider)
			if !ok {
				return nil, errors.Wrapf(ErrUnsupportedConfig, "%s of type %T", BootloaderInputScopeKey, value)
			}
			programInput, err := provider.ProgramInput(dir)
			if err != nil {
				return nil, errors.Wrap(err, "serialize program input")
			}
			if err := os.WriteFile(files.programInput, programInput, 0o644); err != nil {
				return nil, errors.Wrap(err, "write program input")
			}
			hasProgramInput = true
		}
	}

	args := cairoRunArgs(config, files, hasProgramInput)
	log.Debug().Str("layout", config.Layout.String()).Bool("program_input", hasProgramInput).Msg("starting cairo-run")
	if _, err := command.Run(ctx, r.binary(), args...); err != nil {
		return nil, err
	}

	return loadRunHandle(config, files)
}

func cairoRunArgs(config RunConfig, files runFiles, hasProgramInput bool) []string {
	args := []string{
		"--program", files.program,
		"--layout", config.Layout.String(),
	}
	if config.ProofMode {
		args = append(args,
			"--proof_mode",
			"--air_public_input", files.publicInput,
			"--air_private_input", files.privateInput,
		)
	}
	if config.RelocateMem {
		args = append(args, "--memory_file", files.memory)
	}
	if config.TraceEnabled {
		args = append(args, "--trace_file", files.trace)
	}
	if hasProgramInput {
		args = append(args, "--program_input", files.programInput)
	}
	if config.SecureRun != nil && *config.SecureRun {
		args = append(args, "--secure_run")
	}
	if config.DisableTracePadding {
		args = append(args, "--disable_trace_padding")
	}
	if config.AllowMissingBuiltins != nil && *config.AllowMissingBuiltins {
		args = append(args, "--allow_missing_builtins")
	}
	return args
}

// fileHandle is a Handle over the files cairo-run wrote. Everything is read
// eagerly so that the run directory can be removed.
type fileHandle struct {
	memory       Memory
	trace        []TraceEntry
	traceEnabled bool
	publicInput  json.RawMessage
	privateInput types.AirPrivateInput
}

func loadRunHandle(config RunConfig, files runFiles) (Handle, error) {
	h := &fileHandle{traceEnabled: config.TraceEnabled}

	if config.RelocateMem {
		data, err := os.ReadFile(files.memory)
		if err != nil {
			return nil, errors.Wrap(err, "read memory file")
		}
		if h.memory, err = DecodeMemory(data); err != nil {
			return nil, err
		}
	}

	if config.TraceEnabled {
		data, err := os.ReadFile(files.trace)
		if err != nil {
			return nil, errors.Wrap(err, "read trace file")
		}
		if h.trace, err = DecodeTrace(data); err != nil {
			return nil, err
		}
	}

	if config.ProofMode {
		var err error
		if h.publicInput, err = os.ReadFile(files.publicInput); err != nil {
			return nil, errors.Wrap(err, "read public input")
		}
		privateInput, err := os.ReadFile(files.privateInput)
		if err != nil {
			return nil, errors.Wrap(err, "read private input")
		}
		var serializable types.AirPrivateInputSerializable
		if err := json.Unmarshal(privateInput, &serializable); err != nil {
			return nil, errors.Wrap(err, "decode private input")
		}
		h.privateInput = serializable.Builtins
	}

	return h, nil
}

func (h *fileHandle) RelocatedMemory() Memory {
	return h.memory
}

func (h *fileHandle) RelocatedTrace() ([]TraceEntry, bool) {
	return h.trace, h.traceEnabled
}

func (h *fileHandle) AirPublicInput() (json.Marshaler, error) {
	if h.publicInput == nil {
		return nil, errors.New("public input is only produced in proof mode")
	}
	return h.publicInput, nil
}

func (h *fileHandle) AirPrivateInput() types.AirPrivateInput {
	return h.privateInput
}
