package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/stone-prover-sdk/prover"
)

var (
	fProofPath      string
	fAnnotationsDir string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "checks a proof with the Stone verifier",
	RunE:  verify,
}

func verify(cmd *cobra.Command, args []string) error {
	v := &prover.Verifier{Binary: cfg.Binaries.Verifier}

	if fAnnotationsDir == "" {
		if err := v.Verify(cmd.Context(), fProofPath); err != nil {
			return err
		}
		log.Info().Str("proof", fProofPath).Msg("proof verified")
		return nil
	}

	if err := os.MkdirAll(fAnnotationsDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", fAnnotationsDir)
	}
	annotations, err := v.VerifyWithAnnotations(cmd.Context(), fProofPath,
		filepath.Join(fAnnotationsDir, "annotations.txt"),
		filepath.Join(fAnnotationsDir, "extra_output.txt"),
	)
	if err != nil {
		return err
	}
	log.Info().
		Str("proof", fProofPath).
		Str("annotation_file", annotations.AnnotationFile).
		Str("extra_output_file", annotations.ExtraOutputFile).
		Msg("proof verified")
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&fProofPath, "proof", "", "proof file written by the prover")
	verifyCmd.Flags().StringVar(&fAnnotationsDir, "annotations", "", "also write the verifier annotations to this directory")
	verifyCmd.MarkFlagRequired("proof")
}
