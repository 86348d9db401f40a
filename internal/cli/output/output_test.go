package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"text", ModeText},
		{"markdown", ModeMarkdown},
		{"json", ModeJSON},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"yaml", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, ModeText, NewRendererWithTTY(&out, &errOut, true, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&out, &errOut, false, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&out, &errOut, true, ModeJSON).EffectiveMode())
	assert.Equal(t, ModeText, NewRendererWithTTY(&out, &errOut, false, ModeText).EffectiveMode())
}

func TestNewRenderer_BufferIsNotTerminal(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_PlainWhenNotTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)

	r.Header(1, "Nodes")
	r.Success("done")
	r.Muted("quiet")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "Nodes\n✓ done\nquiet\n", out.String())
	assert.Equal(t, "! careful\n✗ broken\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeJSON)

	require.NoError(t, r.JSON(map[string]any{"file": "a.json", "code": "x = 1"}))
	assert.Equal(t, "{\n  \"code\": \"x = 1\",\n  \"file\": \"a.json\"\n}\n", out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(1, "Title"))
	assert.Equal(t, "### Deep", FormatHeader(3, "Deep"))
	assert.Equal(t, "# Clamped", FormatHeader(0, "Clamped"))
	assert.Equal(t, "- **Files:** 3", FormatKeyValue("Files", "3"))
	assert.Equal(t, "```python\nx = 1\n```", FormatCodeBlock("python", "x = 1\n"))
	assert.Equal(t, "```\n\n```", FormatCodeBlock("", ""))
}

func TestRenderer_Table(t *testing.T) {
	headers := []string{"Operator", "Python"}
	rows := [][]string{{"&&", "and"}, {"||", "or"}}

	t.Run("markdown", func(t *testing.T) {
		var out, errOut bytes.Buffer
		NewRendererWithTTY(&out, &errOut, false, ModeMarkdown).Table(headers, rows)
		got := out.String()
		assert.Contains(t, got, "| Operator | Python |")
		assert.Contains(t, got, "| && | and |")
		assert.Equal(t, FormatTable(headers, rows)+"\n", got)
	})

	t.Run("text", func(t *testing.T) {
		var out, errOut bytes.Buffer
		NewRendererWithTTY(&out, &errOut, true, ModeText).Table(headers, rows)
		got := out.String()
		assert.Contains(t, got, "OPERATOR")
		assert.Contains(t, got, "and")
		assert.True(t, strings.ContainsRune(got, '│'))
	})
}
