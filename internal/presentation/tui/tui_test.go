package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/domaingen/internal/presentation/tui"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmds = []domain.Command{
	{"createSelectionCriterion", "inclusive", "RouteType", "A", "B"},
	{"createSelectionCriterion", "exclusive", "Mode", ""},
	{"start"},
	{"importDomainWithSettingsXML", "d.xml"},
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, []tui.VerbCount{
		{Verb: "createSelectionCriterion", Count: 2},
		{Verb: "start", Count: 1},
		{Verb: "importDomainWithSettingsXML", Count: 1},
	}, tui.Summarize(cmds))
}

func TestScriptMarkdown(t *testing.T) {
	md := tui.ScriptMarkdown("routing", cmds)
	assert.True(t, strings.HasPrefix(md, "# routing\n"))
	assert.Contains(t, md, "| `createSelectionCriterion` | 2 |")
	assert.Contains(t, md, "createSelectionCriterion exclusive Mode \"\"\n")

	render, err := tui.NewRenderer("notty", 120)
	require.NoError(t, err)
	out, err := render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "importDomainWithSettingsXML")
}

func TestBannerAndStatus_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	tui.Status(&buf, false, "builder exited with status %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "✘ builder exited with status 3")
}
