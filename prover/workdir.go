package prover

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/wormhole-foundation/stone-prover-sdk/artifacts"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

// WorkingDirectory lists the files the prover reads and writes.
type WorkingDirectory struct {
	Dir              string
	PublicInputFile  string
	PrivateInputFile string
	MemoryFile       string
	TraceFile        string
	ProverConfigFile string
	ParameterFile    string
	ProofFile        string
}

// NewWorkingDirectory returns the file layout under dir without touching the
// file system.
func NewWorkingDirectory(dir string) *WorkingDirectory {
	return &WorkingDirectory{
		Dir:              dir,
		PublicInputFile:  filepath.Join(dir, "public_input.json"),
		PrivateInputFile: filepath.Join(dir, "private_input.json"),
		MemoryFile:       filepath.Join(dir, "memory.bin"),
		TraceFile:        filepath.Join(dir, "trace.bin"),
		ProverConfigFile: filepath.Join(dir, "prover_config.json"),
		ParameterFile:    filepath.Join(dir, "parameters.json"),
		ProofFile:        filepath.Join(dir, "proof.json"),
	}
}

// PrepareWorkingDirectory writes the prover inputs to dir, which must exist.
// The private input points at the memory and trace files by absolute path.
func PrepareWorkingDirectory(dir string, execution *artifacts.ExecutionArtifacts, params types.ProverParameters, config types.ProverConfig) (*WorkingDirectory, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}
	wd := NewWorkingDirectory(abs)

	if err := os.WriteFile(wd.MemoryFile, execution.Memory, 0o644); err != nil {
		return nil, errors.Wrap(err, "write memory")
	}
	if err := os.WriteFile(wd.TraceFile, execution.Trace, 0o644); err != nil {
		return nil, errors.Wrap(err, "write trace")
	}
	if err := types.WriteJSON(wd.PublicInputFile, execution.PublicInput); err != nil {
		return nil, err
	}
	privateInput := execution.PrivateInput.ToSerializable(wd.TraceFile, wd.MemoryFile)
	if err := types.WriteJSON(wd.PrivateInputFile, privateInput); err != nil {
		return nil, err
	}
	if err := types.WriteJSON(wd.ProverConfigFile, config); err != nil {
		return nil, err
	}
	if err := types.WriteJSON(wd.ParameterFile, params); err != nil {
		return nil, err
	}

	return wd, nil
}
