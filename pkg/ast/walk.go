package ast

import "strings"

// Walk traverses a tree depth-first and calls fn for each node.
// If fn returns false, the children of that node are skipped.
func Walk(node Node, fn func(node Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	walkNode(node, fn)
}

func walkList(nodes []Node, fn func(node Node) bool) {
	for _, n := range nodes {
		Walk(n, fn)
	}
}

func walkNode(node Node, fn func(node Node) bool) {
	switch n := node.(type) {
	case *File:
		if n.Program != nil {
			Walk(n.Program, fn)
		}

	case *Program:
		walkList(n.Body, fn)

	case *TemplateLiteral:
		// Quasis and expressions interleave in source order.
		for i, q := range n.Quasis {
			Walk(q, fn)
			if i < len(n.Expressions) {
				Walk(n.Expressions[i], fn)
			}
		}
		for i := len(n.Quasis); i < len(n.Expressions); i++ {
			Walk(n.Expressions[i], fn)
		}

	case *VariableDeclaration:
		for _, d := range n.Declarations {
			Walk(d, fn)
		}

	case *VariableDeclarator:
		Walk(n.ID, fn)
		Walk(n.Init, fn)

	case *FunctionDeclaration:
		if n.ID != nil {
			Walk(n.ID, fn)
		}
		walkList(n.Params, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *FunctionExpression:
		if n.ID != nil {
			Walk(n.ID, fn)
		}
		walkList(n.Params, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *ArrowFunctionExpression:
		walkList(n.Params, fn)
		Walk(n.Body, fn)

	case *UnaryExpression:
		Walk(n.Argument, fn)

	case *UpdateExpression:
		Walk(n.Argument, fn)

	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *LogicalExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *AssignmentExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *MemberExpression:
		Walk(n.Object, fn)
		Walk(n.Property, fn)

	case *CallExpression:
		Walk(n.Callee, fn)
		walkList(n.Arguments, fn)

	case *NewExpression:
		Walk(n.Callee, fn)
		walkList(n.Arguments, fn)

	case *ConditionalExpression:
		Walk(n.Test, fn)
		Walk(n.Consequent, fn)
		Walk(n.Alternate, fn)

	case *ObjectExpression:
		walkList(n.Properties, fn)

	case *ObjectProperty:
		Walk(n.Key, fn)
		Walk(n.Value, fn)

	case *ArrayExpression:
		walkList(n.Elements, fn)

	case *ExpressionStatement:
		Walk(n.Expression, fn)

	case *BlockStatement:
		walkList(n.Body, fn)

	case *ReturnStatement:
		Walk(n.Argument, fn)

	case *IfStatement:
		Walk(n.Test, fn)
		Walk(n.Consequent, fn)
		Walk(n.Alternate, fn)

	case *ForStatement:
		Walk(n.Init, fn)
		Walk(n.Test, fn)
		Walk(n.Update, fn)
		Walk(n.Body, fn)

	case *ForInStatement:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
		Walk(n.Body, fn)
	}
}

// Category groups a supported tag for display: "literal", "expression",
// "statement", "declaration" or "structure". Unsupported tags yield "".
func Category(tag string) string {
	if !IsSupported(tag) {
		return ""
	}
	switch tag {
	case "File", "Program", "TemplateElement", "ObjectProperty", "VariableDeclarator":
		return "structure"
	case "VariableDeclaration", "FunctionDeclaration":
		return "declaration"
	}
	switch {
	case strings.HasSuffix(tag, "Literal"):
		return "literal"
	case strings.HasSuffix(tag, "Statement"):
		return "statement"
	default:
		return "expression"
	}
}
