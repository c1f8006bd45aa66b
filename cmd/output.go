package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wormhole-foundation/stone-prover-sdk/artifacts"
	"github.com/wormhole-foundation/stone-prover-sdk/fri"
	"github.com/wormhole-foundation/stone-prover-sdk/prover"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

// layoutFromFlag falls back to the configured layout when flag is empty.
func layoutFromFlag(flag string) (types.Layout, error) {
	if flag != "" {
		return types.ParseLayout(flag)
	}
	return cfg.ParsedLayout()
}

// writeExecution writes the prover inputs of a run to dir and optionally
// proves them in place.
func writeExecution(ctx context.Context, dir string, execution *artifacts.ExecutionArtifacts, prove bool) error {
	if execution.PublicInput.NSteps == 0 {
		return prover.ErrEmptyExecution
	}
	verifier, err := verifierFromFlags()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	params := fri.GenerateProverParameters(execution.PublicInput.NSteps, verifier)
	wd, err := prover.PrepareWorkingDirectory(dir, execution, params, cfg.ProverConfig)
	if err != nil {
		return err
	}
	log.Info().
		Str("dir", wd.Dir).
		Uint32("n_steps", execution.PublicInput.NSteps).
		Interface("fri_steps", params.Stark.Fri.FriStepList).
		Msg("wrote prover inputs")

	if !prove {
		return nil
	}
	p := &prover.Prover{Binary: cfg.Binaries.Prover}
	proof, err := p.Prove(ctx, wd)
	if err != nil {
		return err
	}
	log.Info().Str("file", wd.ProofFile).Int("proof_bytes", len(proof.ProofBytes())).Msg("proof generated")
	return nil
}
