package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/stone-prover-sdk/fri"
	"github.com/wormhole-foundation/stone-prover-sdk/prover"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

var (
	fProveDir           string
	fGenerateAnnotation bool
)

// proveCmd represents the proof command
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "runs the Stone prover on a directory written by run or bootload",
	RunE:  prove,
}

// checkWorkingDirectory makes sure the parameter file matches the execution
// before handing both to the prover.
func checkWorkingDirectory(wd *prover.WorkingDirectory, verifier types.Verifier) error {
	publicInput, err := types.ReadPublicInput(wd.PublicInputFile)
	if err != nil {
		return err
	}
	params, err := types.ReadProverParameters(wd.ParameterFile)
	if err != nil {
		return err
	}
	return fri.ValidateFriParameters(&params.Stark.Fri, publicInput.NSteps, verifier)
}

func prove(cmd *cobra.Command, args []string) error {
	verifier, err := verifierFromFlags()
	if err != nil {
		return err
	}
	wd := prover.NewWorkingDirectory(fProveDir)
	if err := checkWorkingDirectory(wd, verifier); err != nil {
		return err
	}

	p := &prover.Prover{
		Binary:              cfg.Binaries.Prover,
		GenerateAnnotations: fGenerateAnnotation,
	}

	log.Info().Str("dir", fProveDir).Msg("Creating proof")
	start := time.Now()
	proof, err := p.Prove(cmd.Context(), wd)
	if err != nil {
		return err
	}
	log.Info().
		Str("file", wd.ProofFile).
		Int("proof_bytes", len(proof.ProofBytes())).
		Msg("Successfully created proof, time: " + time.Since(start).String())
	return nil
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVar(&fProveDir, "dir", ".", "directory holding the prover inputs")
	proveCmd.Flags().BoolVar(&fGenerateAnnotation, "generate-annotations", false, "have the prover annotate the proof")
	proveCmd.Flags().StringVar(&fVerifier, "verifier", "", "verifier the parameters must suit (stone or l1), defaults to the configured one")
}
