package domain

// SessionConfig is handed to the builder once, at startup, and never changes afterwards.
type SessionConfig struct {
	// ToplevelConfigPath points at the (rewritten) top-level parameter-framework configuration.
	ToplevelConfigPath string
	Verbose            bool
	Validate           bool
	// SchemasDir is optional; an empty value is still passed positionally.
	SchemasDir string
}

// Args returns the builder's positional arguments:
// <config> <verbose|no-verbose> <validate|no-validate> <schemasDir>.
func (s SessionConfig) Args() []string {
	verbose := "no-verbose"
	if s.Verbose {
		verbose = "verbose"
	}
	validate := "no-validate"
	if s.Validate {
		validate = "validate"
	}
	return []string{s.ToplevelConfigPath, verbose, validate, s.SchemasDir}
}
