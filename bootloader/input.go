package bootloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/wormhole-foundation/stone-prover-sdk/tasks"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

type SimpleBootloaderInput struct {
	// FactTopologiesPath is optional.
	FactTopologiesPath string
	SinglePage         bool
	Tasks              []tasks.TaskSpec
}

type BootloaderConfig struct {
	SimpleBootloaderProgramHash         vm.Felt
	SupportedCairoVerifierProgramHashes []vm.Felt
}

// PackedOutput describes the output layout of one task. Only plain outputs,
// which carry no subtasks, are produced here.
type PackedOutput struct{}

// BootloaderInput is the bootloader's view of its tasks. It is placed in the
// run's execution scopes under vm.BootloaderInputScopeKey.
type BootloaderInput struct {
	SimpleBootloaderInput
	BootloaderConfig
	PackedOutputs []PackedOutput
}

type taskJSON struct {
	Type        string          `json:"type"`
	Program     json.RawMessage `json:"program,omitempty"`
	Path        string          `json:"path,omitempty"`
	UsePoseidon bool            `json:"use_poseidon"`
}

type packedOutputJSON struct {
	Type string `json:"type"`
}

type programInputJSON struct {
	Tasks                               []taskJSON         `json:"tasks"`
	FactTopologiesPath                  *string            `json:"fact_topologies_path"`
	SinglePage                          bool               `json:"single_page"`
	SimpleBootloaderProgramHash         string             `json:"simple_bootloader_program_hash"`
	SupportedCairoVerifierProgramHashes []string           `json:"supported_cairo_verifier_program_hashes"`
	PackedOutputs                       []packedOutputJSON `json:"packed_outputs"`
}

// ProgramInput renders the input as the bootloader's program input file.
// Program tasks are inlined; PIEs are written under dir and referenced by
// path.
func (b *BootloaderInput) ProgramInput(dir string) ([]byte, error) {
	input := programInputJSON{
		Tasks:                               make([]taskJSON, 0, len(b.Tasks)),
		SinglePage:                          b.SinglePage,
		SimpleBootloaderProgramHash:         vm.FeltHex(&b.SimpleBootloaderProgramHash),
		SupportedCairoVerifierProgramHashes: make([]string, 0, len(b.SupportedCairoVerifierProgramHashes)),
		PackedOutputs:                       make([]packedOutputJSON, 0, len(b.PackedOutputs)),
	}
	if b.FactTopologiesPath != "" {
		input.FactTopologiesPath = &b.FactTopologiesPath
	}
	for i := range b.SupportedCairoVerifierProgramHashes {
		input.SupportedCairoVerifierProgramHashes = append(input.SupportedCairoVerifierProgramHashes,
			vm.FeltHex(&b.SupportedCairoVerifierProgramHashes[i]))
	}
	for range b.PackedOutputs {
		input.PackedOutputs = append(input.PackedOutputs, packedOutputJSON{Type: "PlainPackedOutput"})
	}

	for i, spec := range b.Tasks {
		switch task := spec.Task.(type) {
		case tasks.ProgramTask:
			input.Tasks = append(input.Tasks, taskJSON{
				Type:    "RunProgramTask",
				Program: task.Program.Raw(),
			})
		case tasks.PieTask:
			path := filepath.Join(dir, fmt.Sprintf("task_%d.zip", i))
			if err := os.WriteFile(path, task.Pie.Raw(), 0o644); err != nil {
				return nil, errors.Wrapf(err, "write pie of task %d", i)
			}
			input.Tasks = append(input.Tasks, taskJSON{
				Type: "CairoPiePath",
				Path: path,
			})
		default:
			return nil, errors.Errorf("task %d: unexpected task type %T", i, spec.Task)
		}
	}

	return json.Marshal(input)
}
