package prover

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wormhole-foundation/stone-prover-sdk/artifacts"
	"github.com/wormhole-foundation/stone-prover-sdk/command"
	"github.com/wormhole-foundation/stone-prover-sdk/fri"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

const (
	DefaultProverBinary   = "cpu_air_prover"
	DefaultVerifierBinary = "cpu_air_verifier"
)

var ErrEmptyExecution = errors.New("execution has no steps")

// Prover drives the Stone prover executable.
type Prover struct {
	// Binary defaults to DefaultProverBinary.
	Binary              string
	GenerateAnnotations bool
}

func (p *Prover) binary() string {
	if p.Binary == "" {
		return DefaultProverBinary
	}
	return p.Binary
}

func (p *Prover) args(wd *WorkingDirectory) []string {
	args := []string{
		"--out_file", wd.ProofFile,
		"--public_input_file", wd.PublicInputFile,
		"--private_input_file", wd.PrivateInputFile,
		"--prover_config_file", wd.ProverConfigFile,
		"--parameter_file", wd.ParameterFile,
	}
	if p.GenerateAnnotations {
		args = append(args, "--generate_annotations")
	}
	return args
}

// Prove runs the prover on a prepared working directory and reads back the
// proof it wrote.
func (p *Prover) Prove(ctx context.Context, wd *WorkingDirectory) (*types.Proof, error) {
	if _, err := command.Run(ctx, p.binary(), p.args(wd)...); err != nil {
		return nil, err
	}
	proof, err := types.ReadProof(wd.ProofFile)
	if err != nil {
		return nil, errors.Wrap(err, "read proof")
	}
	log.Debug().Str("proof_file", wd.ProofFile).Int("proof_bytes", len(proof.ProofBytes())).Msg("proof generated")
	return proof, nil
}

// ProveProgramExecution proves the artifacts of a run in a scratch
// directory that is removed afterwards.
func ProveProgramExecution(ctx context.Context, prover *Prover, execution *artifacts.ExecutionArtifacts, verifier types.Verifier, config types.ProverConfig) (*types.Proof, error) {
	nSteps := execution.PublicInput.NSteps
	if nSteps == 0 {
		return nil, ErrEmptyExecution
	}
	params := fri.GenerateProverParameters(nSteps, verifier)

	dir := filepath.Join(os.TempDir(), "stone-prover-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create working directory")
	}
	defer os.RemoveAll(dir)

	wd, err := PrepareWorkingDirectory(dir, execution, params, config)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Uint32("n_steps", nSteps).
		Str("verifier", verifier.String()).
		Interface("fri_steps", params.Stark.Fri.FriStepList).
		Msg("proving program execution")

	return prover.Prove(ctx, wd)
}
