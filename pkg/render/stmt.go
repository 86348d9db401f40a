package render

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/jspy/pkg/ast"
)

func (p *Printer) renderVariableDeclaration(n *ast.VariableDeclaration) string {
	return joinList(len(n.Declarations), func(i int) string {
		d := n.Declarations[i]
		p.required(d, n, fmt.Sprintf("declarations[%d]", i))
		return p.renderDeclarator(d)
	}, ", ")
}

func (p *Printer) renderDeclarator(n *ast.VariableDeclarator) string {
	name := p.render(p.required(n.ID, n, "id"))
	if isNil(n.Init) {
		return name
	}
	return name + " = " + p.render(n.Init)
}

func (p *Printer) renderFunctionDeclaration(n *ast.FunctionDeclaration) string {
	header := "def " + p.render(p.required(n.ID, n, "id")) + ":\n"
	p.enter()
	body := p.render(p.required(n.Body, n, "body"))
	p.leave()
	return header + body
}

// renderBlock puts each statement on its own line at the current depth.
func (p *Printer) renderBlock(n *ast.BlockStatement) string {
	var b strings.Builder
	for i, stmt := range n.Body {
		p.required(stmt, n, fmt.Sprintf("body[%d]", i))
		b.WriteString(p.currentIndent())
		b.WriteString(p.render(stmt))
		b.WriteString("\n")
	}
	return b.String()
}

// renderBody renders the body of an if or loop one level deeper. A single
// statement body gets the same line layout as a one-statement block.
func (p *Printer) renderBody(owner ast.Node, field string, body ast.Node) string {
	body = p.required(body, owner, field)
	p.enter()
	defer p.leave()
	if _, ok := body.(*ast.BlockStatement); ok {
		return p.render(body)
	}
	out := p.currentIndent() + p.render(body)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func (p *Printer) renderIf(n *ast.IfStatement) string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(p.render(p.required(n.Test, n, "test")))
	b.WriteString(":\n")
	b.WriteString(p.renderBody(n, "consequent", n.Consequent))

	switch alt := n.Alternate.(type) {
	case nil:
	case *ast.IfStatement:
		if alt == nil {
			break
		}
		b.WriteString(p.currentIndent())
		b.WriteString("el")
		b.WriteString(p.renderIf(alt))
	default:
		b.WriteString(p.currentIndent())
		b.WriteString("else:\n")
		b.WriteString(p.renderBody(n, "alternate", alt))
	}
	return b.String()
}

func (p *Printer) renderForIn(n *ast.ForInStatement) string {
	left := p.render(p.required(n.Left, n, "left"))
	right := p.render(p.required(n.Right, n, "right"))
	return "for " + left + " in " + right + ":\n" + p.renderBody(n, "body", n.Body)
}

// renderFor lowers a counted loop to its init statement followed by a
// while loop whose body ends with the update expression.
func (p *Printer) renderFor(n *ast.ForStatement) string {
	var b strings.Builder
	if !isNil(n.Init) {
		b.WriteString(p.render(n.Init))
		b.WriteString("\n")
		b.WriteString(p.currentIndent())
	}

	test := "true"
	if !isNil(n.Test) {
		test = p.render(n.Test)
	}
	b.WriteString("while ")
	b.WriteString(test)
	b.WriteString(":\n")

	b.WriteString(p.renderBody(n, "body", n.Body))
	if !isNil(n.Update) {
		p.enter()
		b.WriteString(p.currentIndent())
		b.WriteString(p.render(n.Update))
		b.WriteString("\n")
		p.leave()
	}
	return b.String()
}
