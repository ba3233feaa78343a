package main

import (
	"github.com/aretw0/domaingen"
	"github.com/aretw0/domaingen/internal/cli"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the settings database",
		Long: `Loads the criteria and rule files, rewrites the top-level configuration into a
temporary file and streams the command script to the builder. The builder's exit
status becomes domaingen's own.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	config.RegisterInputFlags(cmd.Flags())
	config.RegisterBuilderFlags(cmd.Flags())
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	sc := cli.NewSignalContext(cmd.Context())
	defer sc.Cancel()

	rec := newRecorder(cfg)
	gen := domaingen.New(cfg,
		domaingen.WithLogger(logger),
		domaingen.WithMetrics(rec),
	)
	err = gen.Run(sc)
	writeMetrics(cfg, rec, logger)
	if sig := sc.Signal(); sig != nil {
		logger.Info("generation interrupted", "signal", sig)
	}
	return err
}
