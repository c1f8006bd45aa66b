package cmd

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/stone-prover-sdk/bootloader"
	"github.com/wormhole-foundation/stone-prover-sdk/tasks"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

var (
	fBootloaderPath     string
	fTaskPrograms       []string
	fTaskPies           []string
	fFactTopologiesPath string
)

var bootloadCmd = &cobra.Command{
	Use:   "bootload",
	Short: "run programs and PIEs under the bootloader in proof mode and write the prover inputs",
	RunE:  bootload,
}

func readFiles(paths []string) ([][]byte, error) {
	contents := make([][]byte, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		contents = append(contents, raw)
	}
	return contents, nil
}

func bootload(cmd *cobra.Command, args []string) error {
	rawBootloader, err := os.ReadFile(fBootloaderPath)
	if err != nil {
		return errors.Wrap(err, "read bootloader")
	}
	program, err := vm.ParseProgram(rawBootloader, "main")
	if err != nil {
		return errors.Wrap(err, "load bootloader")
	}

	programs, err := readFiles(fTaskPrograms)
	if err != nil {
		return err
	}
	pies, err := readFiles(fTaskPies)
	if err != nil {
		return err
	}
	taskList, err := tasks.MakeBootloaderTasks(programs, pies)
	if err != nil {
		return err
	}

	opts := bootloader.Options{FactTopologiesPath: fFactTopologiesPath}
	if fLayout != "" {
		layout, err := layoutFromFlag(fLayout)
		if err != nil {
			return err
		}
		opts.Layout = &layout
	}
	allowMissingBuiltins := cfg.AllowMissingBuiltins
	opts.AllowMissingBuiltins = &allowMissingBuiltins

	runner := &vm.CairoRunRunner{Binary: cfg.Binaries.CairoRun}
	start := time.Now()
	execution, err := bootloader.RunBootloaderInProofMode(cmd.Context(), runner, program, taskList, opts)
	if err != nil {
		return err
	}
	log.Info().Int("tasks", len(taskList)).Msg("Successfully ran bootloader, time: " + time.Since(start).String())

	return writeExecution(cmd.Context(), fOutDir, execution, fProve)
}

func init() {
	rootCmd.AddCommand(bootloadCmd)
	bootloadCmd.Flags().StringVar(&fBootloaderPath, "bootloader", "", "compiled bootloader program (JSON)")
	bootloadCmd.Flags().StringSliceVar(&fTaskPrograms, "program", nil, "compiled program to run as a task, repeatable")
	bootloadCmd.Flags().StringSliceVar(&fTaskPies, "pie", nil, "Cairo PIE to run as a task, repeatable")
	bootloadCmd.Flags().StringVar(&fFactTopologiesPath, "fact-topologies", "", "where the bootloader writes its fact topologies")
	bootloadCmd.Flags().StringVar(&fLayout, "layout", "", "layout, defaults to starknet_with_keccak")
	bootloadCmd.Flags().StringVar(&fOutDir, "out", ".", "directory for the prover inputs")
	bootloadCmd.Flags().BoolVar(&fProve, "prove", false, "run the prover on the written inputs")
	bootloadCmd.Flags().StringVar(&fVerifier, "verifier", "", "target verifier (stone or l1), defaults to the configured one")
	bootloadCmd.MarkFlagRequired("bootloader")
}
