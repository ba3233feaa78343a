package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/domaingen"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of domaingen",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "domaingen version %s\n", strings.TrimSpace(domaingen.Version))
		},
	}
}
