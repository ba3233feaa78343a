package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/domaingen/internal/cli"
	"github.com/aretw0/domaingen/internal/presentation/tui"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/script"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <script>",
		Short: "Display a framed command script",
		Long:  `Reads a script in the builder's wire format and displays it with a per-verb summary.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().String("format", string(cli.FormatMarkdown), "Display format: text or markdown")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := cli.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if format == cli.FormatFramed {
		return &domain.ConfigError{Field: "format", Reason: "inspect displays text or markdown"}
	}

	f, err := os.Open(args[0])
	if err != nil {
		return &domain.InputFormatError{File: args[0], Reason: "cannot open script", Err: err}
	}
	defer f.Close()

	cmds, err := script.ReadAll(f)
	if err != nil {
		return &domain.InputFormatError{File: args[0], Reason: "cannot read script", Err: err}
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatText {
		for _, c := range cmds {
			fmt.Fprintln(out, script.FormatText(c))
		}
		fmt.Fprintln(out)
		for _, vc := range tui.Summarize(cmds) {
			fmt.Fprintf(out, "%-32s %d\n", vc.Verb, vc.Count)
		}
		return nil
	}

	var render cli.Renderer
	if tty := stdoutFile(cmd); tty != nil {
		render = cli.TerminalRenderer(tty)
	}
	_, err = cli.WriteScript(out, func(yield func(domain.Command) bool) {
		for _, c := range cmds {
			if !yield(c) {
				return
			}
		}
	}, format, filepath.Base(args[0]), render)
	return err
}
