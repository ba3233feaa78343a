package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/domaingen/pkg/config"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterGlobalFlags(fs)
	config.RegisterInputFlags(fs)
	config.RegisterBuilderFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "domainGeneratorConnector", cfg.Connector)
}

func TestLoad_Layering(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "domaingen.yaml")
	require.NoError(t, os.WriteFile(project, []byte(`
toplevel_config: pfw/ParameterFrameworkConfiguration.xml
criteria: criteria.txt
edds:
  - routing.edd
  - /abs/volumes.edd
validate: "true"
connector: file-connector
log_level: warn
`), 0o644))

	t.Setenv("DOMAINGEN_CONNECTOR", "env-connector")
	t.Setenv("DOMAINGEN_SCHEMAS_DIR", "/schemas")

	fs := newFlags(t, "--log-level", "debug", "--add-domains", "a.xml", "--add-domains", "b.xml")
	cfg, err := config.Load(project, fs)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pfw/ParameterFrameworkConfiguration.xml"), cfg.ToplevelConfig)
	assert.Equal(t, filepath.Join(dir, "criteria.txt"), cfg.Criteria)
	assert.Equal(t, []string{filepath.Join(dir, "routing.edd"), "/abs/volumes.edd"}, cfg.RuleFiles)
	assert.True(t, cfg.ValidateSchemas)
	assert.Equal(t, "env-connector", cfg.Connector, "environment overrides the project file")
	assert.Equal(t, "/schemas", cfg.SchemasDir)
	assert.Equal(t, "debug", cfg.LogLevel, "flags override everything")
	assert.Equal(t, []string{"a.xml", "b.xml"}, cfg.Domains)
	assert.False(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagsKeepLowerLayers(t *testing.T) {
	t.Setenv("DOMAINGEN_CRITERIA", "env.txt")
	cfg, err := config.Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "env.txt", cfg.Criteria)
	assert.Equal(t, "domainGeneratorConnector", cfg.Connector)
}

func TestLoad_JSONProject(t *testing.T) {
	project := filepath.Join(t.TempDir(), "domaingen.json")
	require.NoError(t, os.WriteFile(project, []byte(`{"criteria": "/abs/c.txt", "verbose": true}`), 0o644))
	cfg, err := config.Load(project, nil)
	require.NoError(t, err)
	assert.Equal(t, "/abs/c.txt", cfg.Criteria)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("critera: typo.txt\n"), 0o644))
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("criteria: [\n"), 0o644))

	for name, path := range map[string]string{
		"unknown key": unknown,
		"bad syntax":  broken,
		"missing":     filepath.Join(dir, "missing.yaml"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(path, nil)
			var ce *domain.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, domain.ExitConfig, domain.ExitCode(err))
		})
	}

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("DOMAINGEN_VALIDATE", "maybe")
		_, err := config.Load("", nil)
		assert.Equal(t, domain.ExitConfig, domain.ExitCode(err))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.Config
		field string
	}{
		{"missing toplevel", config.Config{Criteria: "c.txt"}, config.FlagToplevelConfig},
		{"missing criteria", config.Config{ToplevelConfig: "t.xml"}, config.FlagCriteria},
		{"bad log level", config.Config{ToplevelConfig: "t.xml", Criteria: "c.txt", LogLevel: "chatty"}, config.FlagLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ce *domain.ConfigError
			require.ErrorAs(t, tt.cfg.Validate(), &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}

	ok := config.Config{ToplevelConfig: "t.xml", Criteria: "c.txt", LogLevel: "info"}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, config.Config{Criteria: "c.txt"}.ValidateInputs())
}

func TestSessionConfigAndInputs(t *testing.T) {
	cfg := config.Config{
		ToplevelConfig: "t.xml", Criteria: "c.xml", CriterionTypes: "ct.xml",
		Domains: []string{"d.xml"}, RuleFiles: []string{"r.edd"},
		Verbose: true, SchemasDir: "/s",
	}
	assert.Equal(t, domain.SessionConfig{ToplevelConfigPath: "/tmp/x.xml", Verbose: true, SchemasDir: "/s"}, cfg.SessionConfig("/tmp/x.xml"))
	assert.Equal(t, []string{"t.xml", "c.xml", "ct.xml", "d.xml", "r.edd"}, cfg.InputFiles())
}

func TestExpandListFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "several values after one flag",
			args: []string{"--add-edds", "a.pfw", "b.pfw", "--criteria", "c.txt"},
			want: []string{"--add-edds", "a.pfw", "--add-edds", "b.pfw", "--criteria", "c.txt"},
		},
		{
			name: "inline first value",
			args: []string{"--add-domains=a.xml", "b.xml"},
			want: []string{"--add-domains=a.xml", "--add-domains", "b.xml"},
		},
		{
			name: "other flags untouched",
			args: []string{"script", "--criteria", "c.txt", "-v"},
			want: []string{"script", "--criteria", "c.txt", "-v"},
		},
		{
			name: "double dash ends expansion",
			args: []string{"--add-edds", "a", "--", "b"},
			want: []string{"--add-edds", "a", "--", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.ExpandListFlags(tt.args))
		})
	}
}

func TestExpandListFlags_ParsesLikeRepeatedFlags(t *testing.T) {
	fs := newFlags(t, config.ExpandListFlags([]string{"--add-edds", "a.pfw", "b.pfw", "--add-domains", "d.xml", "e.xml"})...)
	cfg, err := config.Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pfw", "b.pfw"}, cfg.RuleFiles)
	assert.Equal(t, []string{"d.xml", "e.xml"}, cfg.Domains)
}
