package commands

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/leapstack-labs/jspy/internal/cli/output"
	"github.com/leapstack-labs/jspy/pkg/ast"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryOrder is the display order of node categories.
var categoryOrder = []string{"structure", "declaration", "statement", "expression", "literal"}

// NodeTypeInfo describes one supported node type.
type NodeTypeInfo struct {
	Type     string `json:"type"`
	Category string `json:"category"`
}

// NodeCount is how often a node type occurs in a document.
type NodeCount struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	Supported bool   `json:"supported"`
}

// FileNodes holds the node counts of one document.
type FileNodes struct {
	File  string      `json:"file"`
	Nodes []NodeCount `json:"nodes"`
}

// NewNodesCommand creates the nodes command.
func NewNodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes [file...]",
		Short: "List supported node types or count the nodes in documents",
		Long: `Without arguments, list the JavaScript node types the renderer supports,
grouped by category.

With files, count the node types each document contains and flag the
ones the renderer does not support.`,
		Example: `  # Show supported node types
  jspy nodes

  # Check a document for unsupported constructs
  jspy nodes program.json`,
		RunE: runNodes,
	}
}

func runNodes(cmd *cobra.Command, args []string) error {
	r := NewCommandContext(cmd).Renderer
	if len(args) == 0 {
		return printSupportedNodes(r)
	}

	results := make([]FileNodes, 0, len(args))
	for _, path := range args {
		counts, err := countNodes(path)
		if err != nil {
			return err
		}
		results = append(results, FileNodes{File: path, Nodes: counts})
	}
	return printNodeCounts(r, results)
}

func supportedNodeTypes() []NodeTypeInfo {
	infos := make([]NodeTypeInfo, 0, len(ast.SupportedTypes))
	for _, cat := range categoryOrder {
		for _, tag := range ast.SupportedTypes {
			if ast.Category(tag) == cat {
				infos = append(infos, NodeTypeInfo{Type: tag, Category: cat})
			}
		}
	}
	return infos
}

func printSupportedNodes(r *output.Renderer) error {
	infos := supportedNodeTypes()
	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		return r.JSON(infos)
	}

	title := fmt.Sprintf("Supported node types (%d)", len(infos))
	if mode == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, title))
	} else {
		r.Header(1, title)
	}

	styles := r.Styles()
	titleCaser := cases.Title(language.English)
	current := ""
	for _, info := range infos {
		if info.Category != current {
			current = info.Category
			if mode == output.ModeMarkdown {
				r.Println("")
				r.Println(output.FormatHeader(2, titleCaser.String(current)))
				r.Println("")
			} else {
				r.Println(styles.Bold.Render(titleCaser.String(current)))
			}
		}
		if mode == output.ModeMarkdown {
			r.Println("- `" + info.Type + "`")
		} else {
			r.Println("  " + info.Type)
		}
	}
	return nil
}

// countNodes parses path and counts each node type in it, sorted by type.
func countNodes(path string) ([]NodeCount, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	root, err := ast.Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	counts := make(map[string]int)
	ast.Walk(root, func(n ast.Node) bool {
		counts[n.Type()]++
		return true
	})

	out := make([]NodeCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, NodeCount{Type: tag, Count: n, Supported: ast.IsSupported(tag)})
	}
	slices.SortFunc(out, func(a, b NodeCount) int {
		return cmp.Compare(a.Type, b.Type)
	})
	return out, nil
}

func printNodeCounts(r *output.Renderer, results []FileNodes) error {
	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		return r.JSON(results)
	}

	for i, res := range results {
		if mode == output.ModeMarkdown {
			if i > 0 {
				r.Println("")
			}
			r.Println(output.FormatHeader(2, res.File))
			r.Println("")
		} else {
			r.Header(2, res.File)
		}

		rows := make([][]string, 0, len(res.Nodes))
		unsupported := 0
		for _, n := range res.Nodes {
			supported := "yes"
			if !n.Supported {
				supported = "no"
				unsupported++
			}
			rows = append(rows, []string{n.Type, strconv.Itoa(n.Count), supported})
		}
		r.Table([]string{"Type", "Count", "Supported"}, rows)

		if unsupported > 0 {
			r.Warning(fmt.Sprintf("%s: %d unsupported node type(s)", res.File, unsupported))
		}
	}
	return nil
}
