package rules_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/edd"
	"github.com/aretw0/domaingen/pkg/ports"
	"github.com/aretw0/domaingen/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const good = "domain: A\n\tconf: C\n\t\t/p = 1\n"

func TestLoad_KeepsOrder(t *testing.T) {
	l := rules.NewLoader(edd.NewParser())
	parsed, err := l.Load(context.Background(),
		rules.StringSource("one.edd", good),
		rules.StringSource("two.edd", "domain: B\n\tconf: C\n\t\t/q = 2\n"),
	)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "one.edd", parsed[0].Name)
	assert.Equal(t, "two.edd", parsed[1].Name)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name     string
		source   rules.Source
		exitCode int
		target   any
	}{
		{"syntax", rules.StringSource("bad.edd", "domain: A\n\t???\n"), domain.ExitRuleSyntax, new(*domain.RuleSyntaxError)},
		{"consistency", rules.StringSource("dup.edd", good+good), domain.ExitRuleConsistency, new(*domain.RuleConsistencyError)},
		{"unreadable", rules.FileSource(filepath.Join(t.TempDir(), "missing.edd")), domain.ExitInputFormat, new(*domain.InputFormatError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := rules.NewLoader(edd.NewParser())
			parsed, err := l.Load(context.Background(), rules.StringSource("ok.edd", good), tt.source)
			require.Error(t, err)
			assert.Nil(t, parsed)
			assert.ErrorAs(t, err, tt.target)
			assert.Equal(t, tt.exitCode, domain.ExitCode(err))
		})
	}
}

type failingParser struct{}

func (failingParser) Parse(string, io.Reader) (ports.RuleTree, error) {
	return nil, errors.New("nope")
}

func TestLoad_WrapsCollaboratorErrors(t *testing.T) {
	_, err := rules.NewLoader(failingParser{}).Load(context.Background(), rules.StringSource("x.edd", ""))
	var se *domain.RuleSyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "x.edd", se.Source)
	assert.EqualError(t, errors.Unwrap(err), "nope")
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rules.NewLoader(edd.NewParser()).Load(ctx, rules.StringSource("x.edd", good))
	assert.ErrorIs(t, err, context.Canceled)
}
