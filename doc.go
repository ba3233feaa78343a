/*
Package domaingen generates parameter-framework settings databases for audio routing.

It reads a set of selection criteria and a set of domain descriptions, turns them into an
ordered command script, and streams that script to the settings-database builder (the
"connector" process), which materializes the settings once its input ends.

# Pipeline

  - Criteria: text ("InclusiveCriterion Name : v1 v2") or XML criteria plus criterion types (pkg/criteria).
  - Rules: domain description files, parsed and propagated before anything runs (pkg/edd, pkg/rules).
  - Sequence: criteria, a single start, domain imports, then the translated rules (pkg/sequencer).
  - Build: the rewritten top-level configuration on the builder's command line, the
    NUL-framed script on its standard input (pkg/adapters/process).

Any input error is fatal and stops the run before the builder is launched.

# Usage

	cfg, err := config.Load("domaingen.yaml", nil)
	if err != nil {
		log.Fatal(err)
	}

	gen := domaingen.New(cfg, domaingen.WithLogger(logger))
	if err := gen.Run(ctx); err != nil {
		os.Exit(domain.ExitCode(err))
	}

To inspect the script without a builder, Load the plan and range over its commands:

	plan, err := gen.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for cmd := range plan.Commands() {
		fmt.Println(cmd)
	}
*/
package domaingen
