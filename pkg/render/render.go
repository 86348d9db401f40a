package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/jspy/pkg/ast"
)

// statementSeparator goes between top-level statements.
const statementSeparator = "\n\n"

// Render renders root, normally a *ast.File, into target source text.
// Unsupported node types render as nothing and are reported through the
// configured diagnostic sinks. Malformed nodes and indentation imbalance
// abort the render with an error.
func Render(root ast.Node, opts ...Option) (out string, err error) {
	if isNil(root) {
		return "", fmt.Errorf("%w: nil root", ErrMalformedNode)
	}

	p := newPrinter(opts...)
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			out, err = "", a.err
		}
	}()

	switch n := root.(type) {
	case *ast.File:
		prog := p.required(n.Program, n, "program").(*ast.Program)
		return p.program(prog), nil
	case *ast.Program:
		return p.program(n), nil
	default:
		s := p.render(n)
		p.checkBalance(0, n)
		return s, nil
	}
}

// program renders each top-level statement independently and separates
// them with a blank line.
func (p *Printer) program(prog *ast.Program) string {
	parts := make([]string, 0, len(prog.Body))
	for i, stmt := range prog.Body {
		p.required(stmt, prog, fmt.Sprintf("body[%d]", i))
		before := p.depth
		parts = append(parts, p.render(stmt))
		p.checkBalance(before, stmt)
	}
	return strings.Join(parts, statementSeparator)
}

func (p *Printer) checkBalance(want int, n ast.Node) {
	if p.depth != want {
		p.fail(fmt.Errorf("%w: depth %d after %s, want %d", ErrUnbalancedIndent, p.depth, n.Type(), want))
	}
}

// render dispatches on the node type.
func (p *Printer) render(n ast.Node) string {
	switch n := n.(type) {
	case *ast.File:
		return p.program(p.required(n.Program, n, "program").(*ast.Program))
	case *ast.Program:
		return p.program(n)

	// Literals and leaves
	case *ast.Identifier:
		return n.Name
	case *ast.StringLiteral:
		return `"` + n.Value + `"`
	case *ast.NumericLiteral:
		return formatNumber(n.Value)
	case *ast.BooleanLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		return "nil"
	case *ast.ThisExpression:
		return "this"
	case *ast.TemplateLiteral:
		return p.renderTemplateLiteral(n)
	case *ast.TemplateElement:
		return n.Raw

	// Expressions
	case *ast.UnaryExpression:
		return p.renderUnary(n, n.Operator, n.Prefix, n.Argument)
	case *ast.UpdateExpression:
		return p.renderUnary(n, n.Operator, n.Prefix, n.Argument)
	case *ast.BinaryExpression:
		return p.renderInfix(n, n.Operator, n.Left, n.Right)
	case *ast.LogicalExpression:
		return p.renderInfix(n, n.Operator, n.Left, n.Right)
	case *ast.AssignmentExpression:
		return p.renderAssignment(n)
	case *ast.MemberExpression:
		return p.renderMember(n)
	case *ast.CallExpression:
		return p.render(p.required(n.Callee, n, "callee")) + "(" + p.list(n, "arguments", n.Arguments) + ")"
	case *ast.NewExpression:
		return "new " + p.render(p.required(n.Callee, n, "callee")) + "(" + p.list(n, "arguments", n.Arguments) + ")"
	case *ast.ConditionalExpression:
		return p.renderConditional(n)
	case *ast.ArrowFunctionExpression:
		return p.renderArrowFunction(n)
	case *ast.FunctionExpression:
		return p.renderFunctionExpression(n)
	case *ast.ObjectExpression:
		return p.renderObject(n)
	case *ast.ObjectProperty:
		return p.renderProperty(n)
	case *ast.ArrayExpression:
		return "[" + p.list(n, "elements", n.Elements) + "]"

	// Statements and declarations
	case *ast.VariableDeclaration:
		return p.renderVariableDeclaration(n)
	case *ast.VariableDeclarator:
		return p.renderDeclarator(n)
	case *ast.FunctionDeclaration:
		return p.renderFunctionDeclaration(n)
	case *ast.ExpressionStatement:
		return p.render(p.required(n.Expression, n, "expression"))
	case *ast.BlockStatement:
		return p.renderBlock(n)
	case *ast.ReturnStatement:
		if isNil(n.Argument) {
			return "return"
		}
		return "return " + p.render(n.Argument)
	case *ast.IfStatement:
		return p.renderIf(n)
	case *ast.ForStatement:
		return p.renderFor(n)
	case *ast.ForInStatement:
		return p.renderForIn(n)

	case *ast.Unknown:
		return p.unsupported(n)
	}

	// A Node implementation from outside the ast package.
	if isNil(n) {
		p.fail(fmt.Errorf("%w: nil node", ErrMalformedNode))
	}
	return p.unsupported(n)
}

// IsRenderError reports whether err came from Render rather than from
// decoding or I/O.
func IsRenderError(err error) bool {
	return errors.Is(err, ErrMalformedNode) ||
		errors.Is(err, ErrUnbalancedIndent) ||
		errors.Is(err, ErrNegativeDepth)
}
