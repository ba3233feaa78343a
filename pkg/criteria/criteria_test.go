package criteria_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/domaingen/pkg/criteria"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadText(t *testing.T) {
	src := "InclusiveCriterion Device : Speaker  Headset\tEarpiece\n" +
		"ExclusiveCriterion Mode:Normal InCall\r\n" +
		"ExclusiveCriterion Empty :\n"

	got, err := criteria.LoadText("criteria.txt", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []domain.Criterion{
		{Name: "Device", Inclusiveness: domain.Inclusive, Values: []string{"Speaker", "Headset", "Earpiece"}},
		{Name: "Mode", Inclusiveness: domain.Exclusive, Values: []string{"Normal", "InCall"}},
		{Name: "Empty", Inclusiveness: domain.Exclusive, Values: []string{""}},
	}, got)
}

func TestLoadText_TrailingWhitespaceAddsNoValue(t *testing.T) {
	got, err := criteria.LoadText("criteria.txt", strings.NewReader("InclusiveCriterion X : A B \t\nExclusiveCriterion Y :   \n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"A", "B"}, got[0].Values)
	assert.Equal(t, []string{""}, got[1].Values)
}

func TestLoadText_RejectsBadLines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"blank line", "InclusiveCriterion A : x\n\nInclusiveCriterion B : y\n", 2},
		{"unknown keyword", "SomeCriterion A : x\n", 1},
		{"missing colon", "InclusiveCriterion A x\n", 1},
		{"duplicate name", "InclusiveCriterion A : x\nExclusiveCriterion A : y\n", 2},
		{"duplicate value", "InclusiveCriterion A : x y x\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := criteria.LoadText("bad.txt", strings.NewReader(tt.src))
			var ife *domain.InputFormatError
			require.ErrorAs(t, err, &ife)
			assert.Equal(t, "bad.txt", ife.File)
			assert.Equal(t, tt.line, ife.Line)
			assert.Equal(t, domain.ExitInputFormat, domain.ExitCode(err))
		})
	}
}

const typesXML = `<?xml version="1.0" encoding="UTF-8"?>
<criterion_types>
	<criterion_type name="ModeType" type="exclusive" values="Normal,InCall"/>
	<criterion_type name="DeviceType" type="inclusive" values="Speaker,Headset"/>
	<criterion_type name="ModeType" type="inclusive" values="Shadowed"/>
	<criterion_type name="NoValues" type="exclusive"/>
	<criterion_type name="Broken" type="sometimes" values="a"/>
</criterion_types>
`

func TestLoadXML(t *testing.T) {
	crit := `<criteria>
	<criterion name="Mode" type="ModeType"/>
	<criterion name="Unknown" type="MissingType"/>
	<criterion name="Device" type="DeviceType"/>
	<criterion name="Bare" type="NoValues"/>
	<group><criterion name="Nested" type="ModeType"/></group>
</criteria>`

	got, err := criteria.LoadXML("criteria.xml", strings.NewReader(crit), "types.xml", strings.NewReader(typesXML))
	require.NoError(t, err)
	assert.Equal(t, []domain.Criterion{
		{Name: "Mode", Inclusiveness: domain.Exclusive, Values: []string{"Normal", "InCall"}},
		{Name: "Device", Inclusiveness: domain.Inclusive, Values: []string{"Speaker", "Headset"}},
		{Name: "Bare", Inclusiveness: domain.Exclusive, Values: []string{""}},
	}, got)
}

func TestLoadXML_Errors(t *testing.T) {
	t.Run("invalid inclusiveness", func(t *testing.T) {
		crit := `<criteria><criterion name="X" type="Broken"/></criteria>`
		_, err := criteria.LoadXML("criteria.xml", strings.NewReader(crit), "types.xml", strings.NewReader(typesXML))
		var ife *domain.InputFormatError
		require.ErrorAs(t, err, &ife)
		assert.Equal(t, "types.xml", ife.File)
		assert.Contains(t, ife.Element, "Broken")
	})

	t.Run("malformed criteria", func(t *testing.T) {
		crit := "<criteria>\n<criterion name=\"X\" type=\"ModeType\">\n"
		_, err := criteria.LoadXML("criteria.xml", strings.NewReader(crit), "types.xml", strings.NewReader(typesXML))
		var ife *domain.InputFormatError
		require.ErrorAs(t, err, &ife)
		assert.Equal(t, "criteria.xml", ife.File)
		assert.Positive(t, ife.Line)
	})

	t.Run("malformed types", func(t *testing.T) {
		crit := `<criteria/>`
		_, err := criteria.LoadXML("criteria.xml", strings.NewReader(crit), "types.xml", strings.NewReader("<criterion_types><oops></criterion_types>"))
		var ife *domain.InputFormatError
		require.ErrorAs(t, err, &ife)
		assert.Equal(t, "types.xml", ife.File)
	})

	t.Run("duplicate criterion", func(t *testing.T) {
		crit := `<criteria><criterion name="M" type="ModeType"/><criterion name="M" type="DeviceType"/></criteria>`
		_, err := criteria.LoadXML("criteria.xml", strings.NewReader(crit), "types.xml", strings.NewReader(typesXML))
		var ife *domain.InputFormatError
		require.ErrorAs(t, err, &ife)
		assert.Contains(t, ife.Reason, "already declared")
	})
}

func TestLoad_SelectsFormat(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "criteria.txt")
	require.NoError(t, os.WriteFile(text, []byte("InclusiveCriterion RouteType : A B\n"), 0o644))

	got, err := criteria.Load(text, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Command{"createSelectionCriterion", "inclusive", "RouteType", "A", "B"}, got[0].Command())

	xmlCrit := filepath.Join(dir, "criteria.xml")
	types := filepath.Join(dir, "types.xml")
	require.NoError(t, os.WriteFile(xmlCrit, []byte(`<criteria><criterion name="Mode" type="ModeType"/></criteria>`), 0o644))
	require.NoError(t, os.WriteFile(types, []byte(typesXML), 0o644))

	got, err = criteria.Load(xmlCrit, types)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mode", got[0].Name)

	_, err = criteria.Load(filepath.Join(dir, "missing.txt"), "")
	var ife *domain.InputFormatError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, domain.ExitInputFormat, domain.ExitCode(err))
}

const routesXML = `<audioPolicyConfiguration>
	<modules>
		<module name="usb">
			<mixPorts><mixPort name="usb_out" role="source"/></mixPorts>
		</module>
		<module name="primary">
			<mixPorts>
				<mixPort name="primary_out" role="source"/>
				<mixPort name="primary_in" role="sink"/>
				<mixPort name="deep_buffer" role="source"/>
			</mixPorts>
		</module>
	</modules>
</audioPolicyConfiguration>`

func TestFillRouteTypes(t *testing.T) {
	types := `<criterion_types>
	<criterion_type name="RoutePlaybackType" type="inclusive" values=""/>
	<criterion_type name="RouteCaptureType" type="inclusive"/>
	<criterion_type name="ModeType" type="exclusive" values="Normal"/>
</criterion_types>`

	var out strings.Builder
	err := criteria.FillRouteTypes("routes.xml", strings.NewReader(routesXML), "types.xml", strings.NewReader(types), &out)
	require.NoError(t, err)
	assert.Equal(t, `<criterion_types>
	<criterion_type name="RoutePlaybackType" type="inclusive" values="primary_out,deep_buffer"></criterion_type>
	<criterion_type name="RouteCaptureType" type="inclusive" values="primary_in"></criterion_type>
	<criterion_type name="ModeType" type="exclusive" values="Normal"></criterion_type>
</criterion_types>`, out.String())
}

func TestReadRouteTypes_NoPrimary(t *testing.T) {
	_, err := criteria.ReadRouteTypes("routes.xml", strings.NewReader(`<a><modules><module name="usb"/></modules></a>`))
	var ife *domain.InputFormatError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, "routes.xml", ife.File)
}
