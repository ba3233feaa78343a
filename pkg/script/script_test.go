package script_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/script"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Framing(t *testing.T) {
	var buf bytes.Buffer
	w := script.NewWriter(&buf)

	require.NoError(t, w.Write(domain.NewCommand("createSelectionCriterion", "inclusive", "RouteType", "A", "B")))
	require.NoError(t, w.Write(domain.NewCommand("start")))
	require.NoError(t, w.Flush())

	assert.Equal(t, "createSelectionCriterion\x00inclusive\x00RouteType\x00A\x00B\nstart\n", buf.String())
	assert.Equal(t, 2, w.Count())
}

func TestWriter_RejectsUnframeableCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  domain.Command
	}{
		{name: "Empty", cmd: domain.Command{}},
		{name: "Embedded Newline", cmd: domain.Command{"setRule", "D", "C", "A Is x\nB"}},
		{name: "Embedded NUL", cmd: domain.Command{"addElement", "D", "/a\x00b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := script.NewWriter(&buf)

			err := w.Write(tt.cmd)
			var encErr *script.EncodeError
			require.True(t, errors.As(err, &encErr), "expected EncodeError, got %v", err)
			require.NoError(t, w.Flush())
			assert.Empty(t, buf.String(), "nothing of a rejected command may reach the output")
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cmds := []domain.Command{
		domain.NewCommand("createSelectionCriterion", "exclusive", "Mode", ""),
		domain.NewCommand("start"),
		domain.NewCommand("importDomainWithSettingsXML", "/etc/domains/a b.xml"),
		domain.NewCommand("setConfigurationParameter", "Routing", "On", "/Audio/codec/volume", "-3\r"),
		{""},
	}

	var buf bytes.Buffer
	w := script.NewWriter(&buf)
	for _, c := range cmds {
		require.NoError(t, w.Write(c))
	}
	require.NoError(t, w.Flush())

	got, err := script.ReadAll(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(cmds, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_UnterminatedFinalRecord(t *testing.T) {
	got, err := script.ReadAll(strings.NewReader("start\nimportDomainWithSettingsXML\x00x.xml"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Command{{"start"}, {"importDomainWithSettingsXML", "x.xml"}}, got)
}

func TestTranslator_ContextualCommands(t *testing.T) {
	tr := script.NewTranslator()

	tr.CreateDomain("Routing")
	tr.SetSequenceAware()
	tr.AddElement("/Audio/codec/volume")
	tr.CreateConfiguration("On")
	tr.SetRule("All{Mode Is Call}")
	tr.SetElementSequence([]string{"/Audio/codec/volume"})
	tr.SetParameter("/Audio/codec/volume", "10")

	want := []domain.Command{
		{"createDomain", "Routing"},
		{"setSequenceAwareness", "Routing", "true"},
		{"addElement", "Routing", "/Audio/codec/volume"},
		{"createConfiguration", "Routing", "On"},
		{"setRule", "Routing", "On", "All{Mode Is Call}"},
		{"setElementSequence", "Routing", "On", "/Audio/codec/volume"},
		{"setConfigurationParameter", "Routing", "On", "/Audio/codec/volume", "10"},
	}
	if diff := cmp.Diff(want, tr.Script()); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatText(t *testing.T) {
	assert.Equal(t, `createSelectionCriterion exclusive Mode ""`,
		script.FormatText(domain.Command{"createSelectionCriterion", "exclusive", "Mode", ""}))
	assert.Equal(t, `setRule D C "All{A Is x}"`,
		script.FormatText(domain.Command{"setRule", "D", "C", "All{A Is x}"}))
}
