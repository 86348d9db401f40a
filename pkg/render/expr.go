package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/jspy/pkg/ast"
	"github.com/leapstack-labs/jspy/pkg/optable"
)

// formatNumber matches JavaScript's Number.prototype.toString for the
// values a parser can produce.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Exponent form without zero padding: 1e+21, 1e-7.
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + exp[:1] + digits
}

func (p *Printer) renderTemplateLiteral(n *ast.TemplateLiteral) string {
	var b strings.Builder
	b.WriteString("'")
	for i := 0; i < len(n.Quasis) || i < len(n.Expressions); i++ {
		if i < len(n.Quasis) {
			b.WriteString(p.render(p.required(n.Quasis[i], n, "quasis")))
		}
		if i < len(n.Expressions) {
			b.WriteString("${")
			b.WriteString(p.render(p.required(n.Expressions[i], n, "expressions")))
			b.WriteString("}")
		}
	}
	b.WriteString("'")
	return b.String()
}

// renderUnary handles unary and update expressions: the translated
// operator goes before or after the operand.
func (p *Printer) renderUnary(n ast.Node, op string, prefix bool, arg ast.Node) string {
	operand := p.render(p.required(arg, n, "argument"))
	op = optable.Translate(op)
	if prefix {
		return op + operand
	}
	return operand + op
}

// renderInfix handles binary and logical expressions.
func (p *Printer) renderInfix(n ast.Node, op string, left, right ast.Node) string {
	l := p.render(p.required(left, n, "left"))
	r := p.render(p.required(right, n, "right"))
	return l + " " + optable.Translate(op) + " " + r
}

// renderAssignment always emits "=". Compound operators such as += are
// not carried over.
func (p *Printer) renderAssignment(n *ast.AssignmentExpression) string {
	l := p.render(p.required(n.Left, n, "left"))
	r := p.render(p.required(n.Right, n, "right"))
	return l + " = " + r
}

func (p *Printer) renderMember(n *ast.MemberExpression) string {
	obj := p.render(p.required(n.Object, n, "object"))
	prop := p.render(p.required(n.Property, n, "property"))
	if n.Computed {
		return obj + "[" + prop + "]"
	}
	return obj + "." + prop
}

// renderConditional keeps the C-style ternary as written.
func (p *Printer) renderConditional(n *ast.ConditionalExpression) string {
	test := p.render(p.required(n.Test, n, "test"))
	cons := p.render(p.required(n.Consequent, n, "consequent"))
	alt := p.render(p.required(n.Alternate, n, "alternate"))
	return test + " ? " + cons + " : " + alt
}

// renderArrowFunction emits a lambda. Only expression bodies produce body
// text; a block body leaves the lambda empty.
func (p *Printer) renderArrowFunction(n *ast.ArrowFunctionExpression) string {
	params := p.list(n, "params", n.Params)
	var body string
	if n.Expression {
		body = p.render(p.required(n.Body, n, "body"))
	}
	return "lambda " + params + ": " + body
}

func (p *Printer) renderFunctionExpression(n *ast.FunctionExpression) string {
	params := p.list(n, "params", n.Params)
	p.enter()
	body := p.render(p.required(n.Body, n, "body"))
	p.leave()
	return "lambda " + params + ":\n" + body
}

func (p *Printer) renderObject(n *ast.ObjectExpression) string {
	p.enter()
	props := joinList(len(n.Properties), func(i int) string {
		return p.currentIndent() + p.render(p.required(n.Properties[i], n, "properties"))
	}, ",\n")
	closing := p.leave()

	if len(n.Properties) == 0 {
		return "{}"
	}
	return "{\n" + props + "\n" + closing + "}"
}

func (p *Printer) renderProperty(n *ast.ObjectProperty) string {
	key := p.render(p.required(n.Key, n, "key"))
	value := p.render(p.required(n.Value, n, "value"))
	return key + ": " + value
}
