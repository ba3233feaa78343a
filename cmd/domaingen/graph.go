package main

import (
	"fmt"

	"github.com/aretw0/domaingen"
	"github.com/aretw0/domaingen/internal/presentation/graph"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the criteria/domain graph",
		Long:  `Outputs a Mermaid diagram (graph LR) linking every criterion to the domains whose rules use it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			plan, err := domaingen.New(cfg, domaingen.WithLogger(logger)).Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(plan.Criteria, plan.References()))
			return nil
		},
	}
	config.RegisterInputFlags(cmd.Flags())
	return cmd
}
