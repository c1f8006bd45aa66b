package cmd

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/stone-prover-sdk/bootloader"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

var (
	fProgramPath string
	fLayout      string
	fOutDir      string
	fProve       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a compiled Cairo program in proof mode and write the prover inputs",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	program, err := os.ReadFile(fProgramPath)
	if err != nil {
		return errors.Wrap(err, "read program")
	}
	layout, err := layoutFromFlag(fLayout)
	if err != nil {
		return err
	}

	runner := &vm.CairoRunRunner{Binary: cfg.Binaries.CairoRun}
	allowMissingBuiltins := cfg.AllowMissingBuiltins

	start := time.Now()
	execution, err := bootloader.ExecuteInProofMode(cmd.Context(), runner, program, layout, &allowMissingBuiltins)
	if err != nil {
		return err
	}
	log.Info().Str("program", fProgramPath).Str("layout", layout.String()).Msg("Successfully ran program, time: " + time.Since(start).String())

	return writeExecution(cmd.Context(), fOutDir, execution, fProve)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&fProgramPath, "program", "", "compiled program (JSON)")
	runCmd.Flags().StringVar(&fLayout, "layout", "", "layout, defaults to the configured one")
	runCmd.Flags().StringVar(&fOutDir, "out", ".", "directory for the prover inputs")
	runCmd.Flags().BoolVar(&fProve, "prove", false, "run the prover on the written inputs")
	runCmd.Flags().StringVar(&fVerifier, "verifier", "", "target verifier (stone or l1), defaults to the configured one")
	runCmd.MarkFlagRequired("program")
}
