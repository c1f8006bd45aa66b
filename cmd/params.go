package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/stone-prover-sdk/fri"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

var (
	fNSteps   uint32
	fVerifier string
	fOutFile  string
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "compute the prover parameters for a number of steps",
	RunE:  params,
}

// verifierFromFlags falls back to the configured verifier when --verifier is
// not given.
func verifierFromFlags() (types.Verifier, error) {
	if fVerifier != "" {
		return types.ParseVerifier(fVerifier)
	}
	return cfg.ParsedVerifier()
}

func params(cmd *cobra.Command, args []string) error {
	if fNSteps == 0 {
		return errors.New("--n-steps must be at least 1")
	}
	verifier, err := verifierFromFlags()
	if err != nil {
		return err
	}

	parameters := fri.GenerateProverParameters(fNSteps, verifier)
	if fOutFile != "" {
		if err := types.WriteJSON(fOutFile, parameters); err != nil {
			return err
		}
		log.Info().Str("file", fOutFile).Msg("wrote prover parameters")
		return nil
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(parameters)
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.Flags().Uint32Var(&fNSteps, "n-steps", 0, "number of steps of the execution")
	paramsCmd.Flags().StringVar(&fVerifier, "verifier", "", "target verifier (stone or l1), defaults to the configured one")
	paramsCmd.Flags().StringVar(&fOutFile, "out", "", "write the parameters to this file instead of stdout")
	paramsCmd.MarkFlagRequired("n-steps")
}
