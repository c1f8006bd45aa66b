package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/stone-prover-sdk/config"
)

var (
	fConfigPath string
	fLogLevel   string

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:               "stone-prover-sdk",
	Short:             "run Cairo programs in proof mode and drive the Stone prover",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(fLogLevel)
	if err != nil {
		return errors.Wrapf(err, "log level %q", fLogLevel)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg = config.Default()
	if fConfigPath != "" {
		if cfg, err = config.Load(fConfigPath); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fConfigPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&fLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}
