package commands

import (
	"strconv"

	"github.com/leapstack-labs/jspy/internal/cli/output"
	"github.com/leapstack-labs/jspy/pkg/optable"
	"github.com/spf13/cobra"
)

// OpInfo describes how one operator is rendered.
type OpInfo struct {
	Operator string `json:"operator"`
	Python   string `json:"python"`
	Source   string `json:"source"` // "table" or "fallback"
}

// NewOpsCommand creates the ops command.
func NewOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops [operator...]",
		Short: "Show how operators are translated",
		Long: `Show the operator translation table.

Without arguments, lists every operator with an explicit translation.
With arguments, shows what each given operator renders as and whether the
translation came from the table or from the two-character fallback.`,
		Example: `  # Show the operator table
  jspy ops

  # Check specific operators
  jspy ops '===' typeof '>>>'`,
		RunE: runOps,
	}
}

func runOps(cmd *cobra.Command, args []string) error {
	r := NewCommandContext(cmd).Renderer
	infos := operatorInfos(args)

	title := "Operators"
	if len(args) > 0 {
		title = "Operator lookup"
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, title))
		r.Println("")
	default:
		r.Header(1, title)
	}
	r.Table([]string{"Operator", "Python", "Source"}, opRows(infos))
	return nil
}

func operatorInfos(ops []string) []OpInfo {
	if len(ops) == 0 {
		entries := optable.Entries()
		infos := make([]OpInfo, 0, len(entries))
		for _, e := range entries {
			infos = append(infos, OpInfo{Operator: e.Source, Python: e.Target, Source: "table"})
		}
		return infos
	}

	infos := make([]OpInfo, 0, len(ops))
	for _, op := range ops {
		info := OpInfo{Operator: op, Source: "table"}
		target, ok := optable.Lookup(op)
		if !ok {
			target = optable.Fallback(op)
			info.Source = "fallback"
		}
		info.Python = target
		infos = append(infos, info)
	}
	return infos
}

// opRows quotes translations so trailing spaces such as "not " stay visible.
func opRows(infos []OpInfo) [][]string {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Operator, strconv.Quote(info.Python), info.Source})
	}
	return rows
}
