package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/domaingen"
	"github.com/aretw0/domaingen/internal/cli"
	"github.com/aretw0/domaingen/internal/presentation/tui"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/spf13/cobra"
)

func newScriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the command script without running the builder",
		Long: `Computes the command script the builder would receive and writes it out.
"framed" is the exact wire format, "text" puts one command per line and "markdown"
adds a per-verb summary (rendered when writing to a terminal).`,
		Args: cobra.NoArgs,
		RunE: runScript,
	}
	config.RegisterInputFlags(cmd.Flags())
	cmd.Flags().String("format", string(cli.FormatText), "Output format: framed, text or markdown")
	cmd.Flags().StringP("output", "o", "", "Write the script to this file instead of stdout")
	cmd.Flags().BoolP("watch", "w", false, "Regenerate whenever an input file changes")
	return cmd
}

func runScript(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := cli.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	watch, _ := cmd.Flags().GetBool("watch")

	gen := domaingen.New(cfg, domaingen.WithLogger(logger))
	regenerate := func(ctx context.Context) error {
		plan, err := gen.Load(ctx)
		if err != nil {
			return err
		}
		out, closeOut, err := cli.OpenOutput(output)
		if err != nil {
			return err
		}
		var render cli.Renderer
		if format == cli.FormatMarkdown {
			render = cli.TerminalRenderer(out)
		}
		w := cmd.OutOrStdout()
		if out != os.Stdout {
			w = out
		}
		n, err := cli.WriteScript(w, plan.Commands(), format, "Command script", render)
		if cerr := closeOut(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write script: %w", err)
		}
		logger.Info("script written", "commands", n, "format", format)
		return nil
	}

	if !watch {
		return regenerate(cmd.Context())
	}

	if err := cfg.ValidateInputs(); err != nil {
		return err
	}
	tui.PrintBanner(cmd.ErrOrStderr())
	sc := cli.NewSignalContext(cmd.Context())
	defer sc.Cancel()

	w, err := cli.NewWatcher(cfg.InputFiles(), cli.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	tui.Status(cmd.ErrOrStderr(), true, "watching %d input files", len(cfg.InputFiles()))
	if err := w.Run(sc, regenerate); err != nil {
		return err
	}
	logger.Info("watch stopped", "signal", sc.Signal())
	return nil
}
