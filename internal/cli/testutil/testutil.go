// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// HelloJSON is a JSON document for print("hi").
const HelloJSON = `{
  "type": "File",
  "program": {
    "type": "Program",
    "body": [
      {
        "type": "ExpressionStatement",
        "expression": {
          "type": "CallExpression",
          "callee": {"type": "Identifier", "name": "print"},
          "arguments": [{"type": "StringLiteral", "value": "hi"}]
        }
      }
    ]
  }
}`

// HelloPython is HelloJSON rendered.
const HelloPython = `print("hi")`

// LogicYAML is a YAML document for x = a && b.
const LogicYAML = `type: File
program:
  type: Program
  body:
    - type: ExpressionStatement
      expression:
        type: AssignmentExpression
        operator: "="
        left: {type: Identifier, name: x}
        right:
          type: LogicalExpression
          operator: "&&"
          left: {type: Identifier, name: a}
          right: {type: Identifier, name: b}
`

// LogicPython is LogicYAML rendered.
const LogicPython = `x = a and b`

// ClassJSON holds an unsupported class declaration followed by print("hi").
const ClassJSON = `{
  "type": "File",
  "program": {
    "type": "Program",
    "body": [
      {"type": "ClassDeclaration", "id": {"type": "Identifier", "name": "Greeter"}},
      {
        "type": "ExpressionStatement",
        "expression": {
          "type": "CallExpression",
          "callee": {"type": "Identifier", "name": "print"},
          "arguments": [{"type": "StringLiteral", "value": "hi"}]
        }
      }
    ]
  }
}`

// SetupTestDocuments writes hello.json, logic.yaml and class.json into a
// temporary directory and returns it.
func SetupTestDocuments(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	docs := map[string]string{
		"hello.json": HelloJSON,
		"logic.yaml": LogicYAML,
		"class.json": ClassJSON,
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// ExecuteCommand runs cmd with args and returns what it wrote to stdout
// and stderr.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
