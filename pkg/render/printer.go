// Package render turns a JavaScript syntax tree into indentation-based
// target source text.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/leapstack-labs/jspy/pkg/ast"
)

const indentSize = 4

// Errors that abort a render.
var (
	ErrMalformedNode    = errors.New("malformed node")
	ErrUnbalancedIndent = errors.New("unbalanced indentation")
	ErrNegativeDepth    = errors.New("negative indentation depth")
)

// Diagnostic describes a construct the renderer skipped.
type Diagnostic struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Option configures a render.
type Option func(*Printer)

// WithLogger sets the logger that receives diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Printer) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDiagnostics registers a callback invoked once per diagnostic.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(p *Printer) {
		p.report = fn
	}
}

// Printer holds the state of a single render: the nesting depth and the
// diagnostic sinks. A Printer is not reused across renders.
type Printer struct {
	depth  int
	logger *slog.Logger
	report func(Diagnostic)
}

func newPrinter(opts ...Option) *Printer {
	p := &Printer{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// abort carries a render error up through the recursion to Render.
type abort struct {
	err error
}

func (p *Printer) fail(err error) {
	panic(abort{err: err})
}

// currentIndent returns the whitespace for the current depth.
func (p *Printer) currentIndent() string {
	return strings.Repeat(" ", p.depth*indentSize)
}

func (p *Printer) enter() {
	p.depth++
}

// leave closes one level and returns the indentation of the new depth.
func (p *Printer) leave() string {
	if p.depth == 0 {
		p.fail(ErrNegativeDepth)
	}
	p.depth--
	return p.currentIndent()
}

// required aborts the render when a child the node shape needs is absent.
func (p *Printer) required(n ast.Node, owner ast.Node, field string) ast.Node {
	if isNil(n) {
		p.fail(fmt.Errorf("%w: %s.%s is nil", ErrMalformedNode, owner.Type(), field))
	}
	return n
}

func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (p *Printer) unsupported(n ast.Node) string {
	d := Diagnostic{
		Type:    n.Type(),
		Message: fmt.Sprintf("unknown node type %s, rendering nothing", n.Type()),
	}
	p.logger.Warn("unsupported node type", "type", d.Type, "depth", p.depth)
	if p.report != nil {
		p.report(d)
	}
	return ""
}

// joinList renders count items with format and joins them with sep.
func joinList(count int, format func(i int) string, sep string) string {
	var b strings.Builder
	for i := 0; i < count; i++ {
		b.WriteString(format(i))
		if i < count-1 {
			b.WriteString(sep)
		}
	}
	return b.String()
}

// list renders nodes comma-separated, as in argument and element lists.
func (p *Printer) list(owner ast.Node, field string, nodes []ast.Node) string {
	return joinList(len(nodes), func(i int) string {
		return p.render(p.required(nodes[i], owner, fmt.Sprintf("%s[%d]", field, i)))
	}, ", ")
}
