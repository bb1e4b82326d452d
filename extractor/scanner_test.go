package extractor

import (
	"strings"
	"testing"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/extractor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig
	cfg.Symbols = map[string]bool{"NETFRAMEWORK": false, "DOCS": true}
	return &cfg
}

func TestScanner_ProseAndCodeSegments(t *testing.T) {
	input := strings.Join([]string{
		"/*md",
		" * # Getting started",
		" *",
		" * First example.",
		" */",
		"var x = 1;",
		"var y = 2;",
	}, "\n") + "\n"

	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.cs", input)
	require.NoError(t, err)
	require.Len(t, segs, 2)

	assert.Equal(t, models.KindProse, segs[0].Kind)
	assert.Equal(t, []string{"# Getting started", "", "First example."}, segs[0].Lines)
	assert.Equal(t, 1, segs[0].StartLine)

	assert.Equal(t, models.KindCode, segs[1].Kind)
	assert.Equal(t, []string{"var x = 1;", "var y = 2;"}, segs[1].Lines)
	assert.Equal(t, 6, segs[1].StartLine)
}

func TestScanner_SingleLineAndEmptyDocBlocks(t *testing.T) {
	scanner := NewScanner(testConfig())

	segs, err := scanner.Scan("a.cs", "/*md One liner. */\n")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, []string{"One liner."}, segs[0].Lines)

	segs, err = scanner.Scan("b.cs", "/*md*/\ncode();\n")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, models.KindProse, segs[0].Kind)
	assert.True(t, segs[0].IsEmptyProse())
}

func TestScanner_LanguageTag(t *testing.T) {
	input := strings.Join([]string{
		"/*md",
		" * Example in F#.",
		" * [source:fsharp]",
		" */",
		"let x = 1",
	}, "\n") + "\n"

	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.fs", input)
	require.NoError(t, err)
	require.Len(t, segs, 2)

	assert.Equal(t, "fsharp", segs[0].Lang)
	// The tag line is not part of the prose body.
	assert.Equal(t, []string{"Example in F#."}, segs[0].Lines)
}

func TestScanner_DirectiveLines(t *testing.T) {
	input := strings.Join([]string{
		"#if NETFRAMEWORK",
		"old();",
		"#else",
		"new();",
		"#endif",
	}, "\n") + "\n"

	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.cs", input)
	require.NoError(t, err)
	require.Len(t, segs, 5)

	assert.Equal(t, models.DirectiveIf, segs[0].Directive)
	assert.Equal(t, "NETFRAMEWORK", segs[0].Symbol)
	assert.False(t, segs[0].Negated)
	assert.Equal(t, models.KindCode, segs[1].Kind)
	assert.Equal(t, models.DirectiveElse, segs[2].Directive)
	assert.Equal(t, models.DirectiveEnd, segs[4].Directive)
}

func TestScanner_NegatedCondition(t *testing.T) {
	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.cs", "#if !DOCS\nx();\n#endif\n")
	require.NoError(t, err)
	require.True(t, segs[0].Negated)
	assert.Equal(t, "DOCS", segs[0].Symbol)
}

func TestScanner_HideWithExplicitShow(t *testing.T) {
	input := strings.Join([]string{
		"visible();",
		"// hide",
		"secret();",
		"// show",
		"alsoVisible();",
	}, "\n") + "\n"

	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.cs", input)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.Equal(t, models.KindCode, segs[0].Kind)
	assert.Equal(t, models.KindHidden, segs[1].Kind)
	assert.Equal(t, []string{"secret();"}, segs[1].Lines)
	assert.Equal(t, models.KindCode, segs[2].Kind)
	assert.Equal(t, []string{"alsoVisible();"}, segs[2].Lines)
}

func TestScanner_HideEndsAtEnclosingBlock(t *testing.T) {
	input := strings.Join([]string{
		"void Demo() {",
		"    // hide",
		"    setup();",
		"}",
		"after();",
	}, "\n") + "\n"

	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.cs", input)
	require.NoError(t, err)

	var hidden, code []string
	for _, s := range segs {
		switch s.Kind {
		case models.KindHidden:
			hidden = append(hidden, s.Lines...)
		case models.KindCode:
			code = append(code, s.Lines...)
		}
	}
	assert.Equal(t, []string{"    setup();"}, hidden)
	// The closing brace belongs to the visible enclosing block.
	assert.Equal(t, []string{"void Demo() {", "}", "after();"}, code)
}

func TestScanner_ExplicitModeRequiresShow(t *testing.T) {
	cfg := testConfig()
	cfg.HideScope = "explicit"
	scanner := NewScanner(cfg)

	_, err := scanner.Scan("sample.cs", "// hide\nsecret();\n")
	require.Error(t, err)
	structErr, ok := err.(*models.StructuralError)
	require.True(t, ok)
	assert.Equal(t, 1, structErr.Line)
}

func TestScanner_NestedHideIsStructuralError(t *testing.T) {
	scanner := NewScanner(testConfig())
	_, err := scanner.Scan("sample.cs", "// hide\n// hide\nx();\n")
	require.Error(t, err)
	_, ok := err.(*models.StructuralError)
	assert.True(t, ok)
}

func TestScanner_ShowWithoutHideIsStructuralError(t *testing.T) {
	scanner := NewScanner(testConfig())
	_, err := scanner.Scan("sample.cs", "x();\n// show\n")
	require.Error(t, err)
}

func TestScanner_UnterminatedDocBlock(t *testing.T) {
	scanner := NewScanner(testConfig())
	_, err := scanner.Scan("sample.cs", "/*md\n * Never closed.\n")
	require.Error(t, err)
	structErr, ok := err.(*models.StructuralError)
	require.True(t, ok)
	assert.Equal(t, 1, structErr.Line)
	assert.Contains(t, structErr.Reason, "unterminated")
}

func TestScanner_MarkerBoundary(t *testing.T) {
	// "/*mdx" is an ordinary comment, not a documentation block.
	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.cs", "/*mdx not docs */\n")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, models.KindCode, segs[0].Kind)
}

// Raw lines of the scanned segments, concatenated in order, must
// reproduce the input byte for byte.
func TestScanner_RoundTripIdentity(t *testing.T) {
	input := strings.Join([]string{
		"/*md",
		" * Round trip.",
		" */",
		"#if DOCS",
		"void Demo() {",
		"    // hide",
		"    secret();",
		"    // show",
		"    visible(); // <1>",
		"}",
		"#endif",
		"/*md",
		" * 1. callout item",
		" */",
	}, "\n") + "\n"

	scanner := NewScanner(testConfig())
	segs, err := scanner.Scan("sample.cs", input)
	require.NoError(t, err)

	var raw []string
	for _, s := range segs {
		raw = append(raw, s.Raw...)
	}
	assert.Equal(t, input, strings.Join(raw, "\n")+"\n")
}
