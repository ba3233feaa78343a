package main

import (
	"os"

	"github.com/aretw0/domaingen/pkg/criteria"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/spf13/cobra"
)

func newCriterionTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "criterion-types",
		Short: "Fill the route criterion types from an audio policy configuration",
		Long: `Collects the mix port names of the primary module of an audio policy
configuration and writes them as the values of the RoutePlaybackType (sources) and
RouteCaptureType (sinks) criterion types.`,
		Args: cobra.NoArgs,
		RunE: runCriterionTypes,
	}
	cmd.Flags().String("routes", "", "Audio policy configuration holding the mix ports")
	cmd.Flags().String("criteriontypes", "", "Criterion types XML file to update")
	cmd.Flags().String("outputfile", "", "Where to write the updated criterion types")
	return cmd
}

func runCriterionTypes(cmd *cobra.Command, _ []string) (err error) {
	routesPath, _ := cmd.Flags().GetString("routes")
	typesPath, _ := cmd.Flags().GetString("criteriontypes")
	outPath, _ := cmd.Flags().GetString("outputfile")

	for name, v := range map[string]string{"routes": routesPath, "criteriontypes": typesPath, "outputfile": outPath} {
		if v == "" {
			return &domain.ConfigError{Field: name, Reason: "required"}
		}
	}
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	routes, err := os.Open(routesPath)
	if err != nil {
		return &domain.InputFormatError{File: routesPath, Reason: "cannot open", Err: err}
	}
	defer routes.Close()

	types, err := os.Open(typesPath)
	if err != nil {
		return &domain.InputFormatError{File: typesPath, Reason: "cannot open", Err: err}
	}
	defer types.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return &domain.InputFormatError{File: outPath, Reason: "cannot create", Err: err}
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = &domain.InputFormatError{File: outPath, Reason: "cannot write", Err: cerr}
		}
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	if err := criteria.FillRouteTypes(routesPath, routes, typesPath, types, out, criteria.WithLogger(logger)); err != nil {
		return err
	}
	logger.Info("criterion types written", "path", outPath)
	return nil
}
