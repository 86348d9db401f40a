package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/jspy/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears every JSPY_ variable the fallback config reads.
func isolateEnv(t *testing.T, output string) {
	t.Helper()
	for _, key := range []string{"SOURCE", "OUT_DIR", "VERBOSE", "STRICT", "WORKERS"} {
		t.Setenv("JSPY_"+key, "")
	}
	t.Setenv("JSPY_OUTPUT", output)
}

func TestRenderCommand_Text(t *testing.T) {
	isolateEnv(t, "text")
	dir := testutil.SetupTestDocuments(t)

	stdout, stderr, err := testutil.ExecuteCommand(t, NewRenderCommand(), filepath.Join(dir, "hello.json"))
	require.NoError(t, err)

	assert.Equal(t, testutil.HelloPython+"\n", stdout)
	assert.Empty(t, stderr)
}

func TestRenderCommand_TextMultipleFiles(t *testing.T) {
	isolateEnv(t, "text")
	dir := testutil.SetupTestDocuments(t)
	hello := filepath.Join(dir, "hello.json")
	logic := filepath.Join(dir, "logic.yaml")

	stdout, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), hello, logic)
	require.NoError(t, err)

	want := hello + "\n" + testutil.HelloPython + "\n\n" + logic + "\n" + testutil.LogicPython + "\n"
	assert.Equal(t, want, stdout)
}

func TestRenderCommand_Markdown(t *testing.T) {
	isolateEnv(t, "")
	dir := testutil.SetupTestDocuments(t)
	hello := filepath.Join(dir, "hello.json")

	stdout, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), hello)
	require.NoError(t, err)

	assert.Contains(t, stdout, "## "+hello)
	assert.Contains(t, stdout, "```python\n"+testutil.HelloPython+"\n```")
	testutil.AssertValidMarkdown(t, stdout)
	testutil.AssertNoANSI(t, stdout)
}

func TestRenderCommand_JSON(t *testing.T) {
	isolateEnv(t, "json")
	dir := testutil.SetupTestDocuments(t)
	hello := filepath.Join(dir, "hello.json")
	class := filepath.Join(dir, "class.json")

	stdout, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), hello, class)
	require.NoError(t, err)

	var results []FileResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)

	assert.Equal(t, hello, results[0].File)
	assert.Equal(t, testutil.HelloPython, results[0].Code)
	assert.Empty(t, results[0].Diagnostics)

	assert.Equal(t, class, results[1].File)
	assert.Equal(t, "\n\n"+testutil.HelloPython, results[1].Code)
	require.Len(t, results[1].Diagnostics, 1)
	assert.Equal(t, "ClassDeclaration", results[1].Diagnostics[0].Type)
}

func TestRenderCommand_DiagnosticsListedAfterOutput(t *testing.T) {
	isolateEnv(t, "text")
	dir := testutil.SetupTestDocuments(t)
	class := filepath.Join(dir, "class.json")

	stdout, stderr, err := testutil.ExecuteCommand(t, NewRenderCommand(), class)
	require.NoError(t, err)

	assert.Equal(t, "\n\n"+testutil.HelloPython+"\n", stdout)
	assert.Equal(t, "! "+class+": unknown node type ClassDeclaration, rendering nothing\n", stderr)
}

func TestRenderCommand_MarkdownListsUnsupported(t *testing.T) {
	isolateEnv(t, "markdown")
	dir := testutil.SetupTestDocuments(t)

	stdout, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), filepath.Join(dir, "class.json"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "### Unsupported constructs")
	assert.Contains(t, stdout, "- `ClassDeclaration`: unknown node type ClassDeclaration, rendering nothing")
	testutil.AssertValidMarkdown(t, stdout)
}

func TestRenderCommand_Strict(t *testing.T) {
	isolateEnv(t, "text")
	dir := testutil.SetupTestDocuments(t)

	_, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), "--strict", filepath.Join(dir, "class.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnsupported))
	assert.Contains(t, err.Error(), "1 found")

	_, _, err = testutil.ExecuteCommand(t, NewRenderCommand(), "--strict", filepath.Join(dir, "hello.json"))
	assert.NoError(t, err)
}

func TestRenderCommand_StrictFromEnv(t *testing.T) {
	isolateEnv(t, "text")
	t.Setenv("JSPY_STRICT", "true")
	dir := testutil.SetupTestDocuments(t)

	_, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), filepath.Join(dir, "class.json"))
	assert.ErrorIs(t, err, errUnsupported)
}

func TestRenderCommand_OutDir(t *testing.T) {
	isolateEnv(t, "markdown")
	dir := testutil.SetupTestDocuments(t)
	outDir := filepath.Join(t.TempDir(), "build")

	stdout, _, err := testutil.ExecuteCommand(t, NewRenderCommand(),
		"--out-dir", outDir, filepath.Join(dir, "hello.json"), filepath.Join(dir, "logic.yaml"))
	require.NoError(t, err)

	hello, err := os.ReadFile(filepath.Join(outDir, "hello.py"))
	require.NoError(t, err)
	assert.Equal(t, testutil.HelloPython+"\n", string(hello))

	logic, err := os.ReadFile(filepath.Join(outDir, "logic.py"))
	require.NoError(t, err)
	assert.Equal(t, testutil.LogicPython+"\n", string(logic))

	assert.Contains(t, stdout, "- **Output:** "+filepath.Join(outDir, "hello.py"))
	assert.NotContains(t, stdout, "```python")
}

func TestRenderCommand_SourceFallback(t *testing.T) {
	isolateEnv(t, "text")
	dir := testutil.SetupTestDocuments(t)
	t.Setenv("JSPY_SOURCE", filepath.Join(dir, "logic.yaml"))

	stdout, _, err := testutil.ExecuteCommand(t, NewRenderCommand())
	require.NoError(t, err)
	assert.Equal(t, testutil.LogicPython+"\n", stdout)
}

func TestRenderCommand_SourceFlag(t *testing.T) {
	isolateEnv(t, "text")
	dir := testutil.SetupTestDocuments(t)

	stdout, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), "--source", filepath.Join(dir, "hello.json"))
	require.NoError(t, err)
	assert.Equal(t, testutil.HelloPython+"\n", stdout)
}

func TestRenderCommand_NoInput(t *testing.T) {
	isolateEnv(t, "text")

	_, _, err := testutil.ExecuteCommand(t, NewRenderCommand())
	assert.ErrorIs(t, err, errNoInput)
}

func TestRenderCommand_Errors(t *testing.T) {
	isolateEnv(t, "text")
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing file", filepath.Join(dir, "missing.json"), "failed to read"},
		{"invalid document", broken, "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := testutil.ExecuteCommand(t, NewRenderCommand(), tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderFiles_KeepsInputOrder(t *testing.T) {
	dir := testutil.SetupTestDocuments(t)
	files := []string{
		filepath.Join(dir, "logic.yaml"),
		filepath.Join(dir, "hello.json"),
		filepath.Join(dir, "class.json"),
		filepath.Join(dir, "hello.json"),
	}
	logger := slog.New(slog.DiscardHandler)

	for _, workers := range []int{1, 2, 8} {
		results, err := renderFiles(context.Background(), files, workers, logger)
		require.NoError(t, err)
		require.Len(t, results, len(files))
		for i, res := range results {
			assert.Equal(t, files[i], res.File)
		}
		assert.Equal(t, testutil.LogicPython, results[0].Code)
		assert.Equal(t, testutil.HelloPython, results[1].Code)
		assert.Len(t, results[2].Diagnostics, 1)
	}
}

func TestRenderFiles_Cancelled(t *testing.T) {
	dir := testutil.SetupTestDocuments(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderFiles(ctx, []string{filepath.Join(dir, "hello.json")}, 1, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "hello.py", outputName("/tmp/docs/hello.json"))
	assert.Equal(t, "logic.py", outputName("logic.yaml"))
	assert.Equal(t, "noext.py", outputName("dir/noext"))
	assert.True(t, strings.HasSuffix(outputName("a.b.json"), "a.b.py"))
}
