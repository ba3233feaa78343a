package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/domaingen/internal/cli"
	"github.com/aretw0/domaingen/internal/metrics"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "domaingen",
		Short: "domaingen generates parameter-framework settings from criteria and domain rules",
		Long: `domaingen reads selection criteria and domain descriptions, turns them into a
command script and streams it to the settings-database builder.

Without a subcommand it behaves as "generate".`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runGenerate,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &domain.ConfigError{Reason: err.Error()}
	})

	config.RegisterGlobalFlags(root.PersistentFlags())
	config.RegisterInputFlags(root.Flags())
	config.RegisterBuilderFlags(root.Flags())

	root.AddCommand(
		newGenerateCmd(),
		newScriptCmd(),
		newInspectCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newCriterionTypesCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit status.
// A failing builder has already reported on its own, so only its status is forwarded.
func Execute(args []string) int {
	return execute(args, os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(config.ExpandListFlags(args))
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(context.Background())
	if err != nil {
		var bf *domain.BuilderFailure
		if !errors.As(err, &bf) {
			fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		}
	}
	return domain.ExitCode(err)
}

// setup resolves the layered configuration and the logger for cmd.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString(config.FlagConfig)
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// newRecorder returns a recorder when metrics are requested, and nil otherwise.
func newRecorder(cfg config.Config) *metrics.Recorder {
	if cfg.MetricsFile == "" {
		return nil
	}
	return metrics.New()
}

func writeMetrics(cfg config.Config, rec *metrics.Recorder, logger *slog.Logger) {
	if rec == nil {
		return
	}
	if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warn("failed to write metrics", "path", cfg.MetricsFile, "err", err)
	}
}

// stdoutFile returns cmd's output as a file when it is one, for terminal detection.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
