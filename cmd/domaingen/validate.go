package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/domaingen"
	"github.com/aretw0/domaingen/internal/presentation/tui"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/aretw0/domaingen/pkg/script"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the criteria and rule files without running the builder",
		Long: `Loads the criteria and every rule file, propagates the rules and checks that the
resulting script can be framed. Criteria referenced by rules but never declared are
reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
	config.RegisterInputFlags(cmd.Flags())
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	plan, err := domaingen.New(cfg, domaingen.WithLogger(logger)).Load(cmd.Context())
	if err != nil {
		return err
	}

	n := 0
	for c := range plan.Commands() {
		if err := script.Validate(c); err != nil {
			return fmt.Errorf("command %d (%s): %w", n+1, c.Verb(), err)
		}
		n++
	}

	out := cmd.OutOrStdout()
	for _, ref := range plan.Undeclared() {
		logger.Warn("undeclared criteria", "domain", ref.Domain, "criteria", ref.Criteria)
		tui.Status(out, false, "domain %s references undeclared criteria: %s", ref.Domain, strings.Join(ref.Criteria, ", "))
	}
	tui.Status(out, true, "%d criteria, %d rule files, %d commands", len(plan.Criteria), len(plan.Rules), n)
	return nil
}
