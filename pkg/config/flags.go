package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig           = "config"
	FlagToplevelConfig   = "toplevel-config"
	FlagCriteria         = "criteria"
	FlagCriterionTypes   = "criteriontypes"
	FlagInitialSettings  = "initial-settings"
	FlagDomains          = "add-domains"
	FlagRuleFiles        = "add-edds"
	FlagSchemasDir       = "schemas-dir"
	FlagTargetSchemasDir = "target-schemas-dir"
	FlagValidate         = "validate"
	FlagVerbose          = "verbose"
	FlagConnector        = "connector"
	FlagLogLevel         = "log-level"
	FlagMetricsFile      = "metrics-file"
)

// RegisterInputFlags declares the flags describing the generator's inputs.
func RegisterInputFlags(fs *pflag.FlagSet) {
	fs.String(FlagToplevelConfig, "", "Top-level parameter-framework configuration file")
	fs.String(FlagCriteria, "", "Criteria file (text format, or XML with --criteriontypes)")
	fs.String(FlagCriterionTypes, "", "Criterion types XML file; selects the XML criteria format")
	fs.String(FlagInitialSettings, "", "Initial XML settings file (a <ConfigurableDomains> document)")
	fs.StringArray(FlagDomains, nil, "Standalone XML domain file (repeatable)")
	fs.StringArray(FlagRuleFiles, nil, "Rule file in the domain description language (repeatable)")
}

// RegisterBuilderFlags declares the flags that only matter when the builder runs.
func RegisterBuilderFlags(fs *pflag.FlagSet) {
	fs.String(FlagSchemasDir, "", "Directory of parameter-framework XML schemas")
	fs.String(FlagTargetSchemasDir, "", "Ignored, kept for compatibility")
	_ = fs.MarkHidden(FlagTargetSchemasDir)
	fs.Bool(FlagValidate, false, "Validate the settings against the XML schemas")
	fs.String(FlagConnector, "", "Builder executable (default "+Default().Connector+")")
}

// RegisterGlobalFlags declares the flags shared by every command.
func RegisterGlobalFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Project file (YAML or JSON) holding default settings")
	fs.BoolP(FlagVerbose, "v", false, "Verbose output (debug logging, builder verbosity)")
	fs.String(FlagLogLevel, "", "Log level: debug, info, warn or error")
	fs.String(FlagMetricsFile, "", "Write Prometheus textfile metrics to this path")
}

// listFlags take several values after a single occurrence, as in "--add-edds a.pfw b.pfw".
var listFlags = map[string]bool{FlagDomains: true, FlagRuleFiles: true}

// ExpandListFlags rewrites "--add-edds a b" into "--add-edds a --add-edds b" (and likewise
// for --add-domains), so pflag sees one value per occurrence. Values run until the next
// argument starting with "-"; "--" ends flag processing.
func ExpandListFlags(args []string) []string {
	out := make([]string, 0, len(args))
	current := ""
	for i, arg := range args {
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case strings.HasPrefix(arg, "-") && arg != "-":
			current = ""
			name, _, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
			if strings.HasPrefix(arg, "--") && listFlags[name] {
				current = "--" + name
				if !hasValue {
					out = append(out, arg)
					continue
				}
			}
		case current != "":
			if out[len(out)-1] != current {
				out = append(out, current)
			}
			out = append(out, arg)
			continue
		}
		out = append(out, arg)
	}
	return out
}
