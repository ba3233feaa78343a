// Package config resolves the generator's invocation settings.
//
// Sources are layered, lowest precedence first: built-in defaults, a project file (YAML,
// or JSON by extension), DOMAINGEN_* environment variables, then the command-line flags
// the user actually set.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/domaingen/internal/logging"
	"github.com/aretw0/domaingen/pkg/adapters/process"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DOMAINGEN_"

// Config holds every setting of a generation run.
type Config struct {
	ToplevelConfig  string   `yaml:"toplevel_config" json:"toplevel_config" mapstructure:"toplevel_config" env:"TOPLEVEL_CONFIG"`
	Criteria        string   `yaml:"criteria" json:"criteria" mapstructure:"criteria" env:"CRITERIA"`
	CriterionTypes  string   `yaml:"criterion_types" json:"criterion_types" mapstructure:"criterion_types" env:"CRITERION_TYPES"`
	InitialSettings string   `yaml:"initial_settings" json:"initial_settings" mapstructure:"initial_settings" env:"INITIAL_SETTINGS"`
	Domains         []string `yaml:"domains" json:"domains" mapstructure:"domains" env:"DOMAINS" envSeparator:","`
	RuleFiles       []string `yaml:"edds" json:"edds" mapstructure:"edds" env:"EDDS" envSeparator:","`
	SchemasDir      string   `yaml:"schemas_dir" json:"schemas_dir" mapstructure:"schemas_dir" env:"SCHEMAS_DIR"`
	ValidateSchemas bool     `yaml:"validate" json:"validate" mapstructure:"validate" env:"VALIDATE"`
	Verbose         bool     `yaml:"verbose" json:"verbose" mapstructure:"verbose" env:"VERBOSE"`
	Connector       string   `yaml:"connector" json:"connector" mapstructure:"connector" env:"CONNECTOR"`
	LogLevel        string   `yaml:"log_level" json:"log_level" mapstructure:"log_level" env:"LOG_LEVEL"`
	MetricsFile     string   `yaml:"metrics_file" json:"metrics_file" mapstructure:"metrics_file" env:"METRICS_FILE"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{Connector: process.DefaultBinary}
}

// Load layers the project file at path (skipped when empty), the environment and the
// changed flags of fs (skipped when nil) over the defaults.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, &domain.ConfigError{Field: "environment", Reason: err.Error()}
	}
	if fs != nil {
		if err := cfg.mergeFlags(fs); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// ParseEnv loads DOMAINGEN_* variables into target. Unset variables leave fields untouched.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &domain.ConfigError{Field: "config", Reason: fmt.Sprintf("failed to read project file: %v", err)}
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return &domain.ConfigError{Field: "config", Reason: fmt.Sprintf("failed to parse %s: %v", path, err)}
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		Metadata:         &md,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return &domain.ConfigError{Field: "config", Reason: fmt.Sprintf("invalid project file %s: %v", path, err)}
	}

	// Paths in the file are relative to the file itself.
	base := filepath.Dir(path)
	for _, key := range md.Keys {
		switch key {
		case "toplevel_config":
			c.ToplevelConfig = resolve(base, c.ToplevelConfig)
		case "criteria":
			c.Criteria = resolve(base, c.Criteria)
		case "criterion_types":
			c.CriterionTypes = resolve(base, c.CriterionTypes)
		case "initial_settings":
			c.InitialSettings = resolve(base, c.InitialSettings)
		case "schemas_dir":
			c.SchemasDir = resolve(base, c.SchemasDir)
		case "metrics_file":
			c.MetricsFile = resolve(base, c.MetricsFile)
		case "domains":
			for i := range c.Domains {
				c.Domains[i] = resolve(base, c.Domains[i])
			}
		case "edds":
			for i := range c.RuleFiles {
				c.RuleFiles[i] = resolve(base, c.RuleFiles[i])
			}
		}
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func (c *Config) mergeFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagToplevelConfig:
			c.ToplevelConfig = f.Value.String()
		case FlagCriteria:
			c.Criteria = f.Value.String()
		case FlagCriterionTypes:
			c.CriterionTypes = f.Value.String()
		case FlagInitialSettings:
			c.InitialSettings = f.Value.String()
		case FlagSchemasDir:
			c.SchemasDir = f.Value.String()
		case FlagConnector:
			c.Connector = f.Value.String()
		case FlagLogLevel:
			c.LogLevel = f.Value.String()
		case FlagMetricsFile:
			c.MetricsFile = f.Value.String()
		case FlagDomains:
			c.Domains, err = fs.GetStringArray(f.Name)
		case FlagRuleFiles:
			c.RuleFiles, err = fs.GetStringArray(f.Name)
		case FlagValidate:
			c.ValidateSchemas, err = fs.GetBool(f.Name)
		case FlagVerbose:
			c.Verbose, err = fs.GetBool(f.Name)
		}
	})
	if err != nil {
		return &domain.ConfigError{Field: "flags", Reason: err.Error()}
	}
	return nil
}

// Validate checks the settings every generation needs.
func (c Config) Validate() error {
	if c.ToplevelConfig == "" {
		return &domain.ConfigError{Field: FlagToplevelConfig, Reason: "a top-level configuration file is required"}
	}
	return c.ValidateInputs()
}

// ValidateInputs checks the settings needed to compute the command stream alone.
func (c Config) ValidateInputs() error {
	if c.Criteria == "" {
		return &domain.ConfigError{Field: FlagCriteria, Reason: "a criteria file is required"}
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return &domain.ConfigError{Field: FlagLogLevel, Reason: err.Error()}
		}
	}
	return nil
}

// SessionConfig returns the builder session settings for the given (rewritten) top-level file.
func (c Config) SessionConfig(toplevel string) domain.SessionConfig {
	return domain.SessionConfig{
		ToplevelConfigPath: toplevel,
		Verbose:            c.Verbose,
		Validate:           c.ValidateSchemas,
		SchemasDir:         c.SchemasDir,
	}
}

// InputFiles lists every input file the run reads, for change watching.
func (c Config) InputFiles() []string {
	var files []string
	for _, f := range []string{c.ToplevelConfig, c.Criteria, c.CriterionTypes, c.InitialSettings} {
		if f != "" {
			files = append(files, f)
		}
	}
	files = append(files, c.Domains...)
	return append(files, c.RuleFiles...)
}
