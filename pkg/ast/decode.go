package ast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMalformed is wrapped by every DecodeError.
var ErrMalformed = errors.New("malformed node")

// DecodeError reports a node whose shape does not match its type tag.
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed node at root: %s", e.Message)
	}
	return fmt.Sprintf("malformed node at %s: %s", e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error { return ErrMalformed }

type decodeFunc func(f fields) (Node, error)

var decoders map[string]decodeFunc

// Populated in init: the decode functions reach decoders through decodeNode.
func init() {
	decoders = map[string]decodeFunc{
		"File":                    decodeFile,
		"Program":                 decodeProgram,
		"Identifier":              decodeIdentifier,
		"StringLiteral":           decodeStringLiteral,
		"NumericLiteral":          decodeNumericLiteral,
		"BooleanLiteral":          decodeBooleanLiteral,
		"NullLiteral":             func(fields) (Node, error) { return &NullLiteral{}, nil },
		"TemplateLiteral":         decodeTemplateLiteral,
		"TemplateElement":         decodeTemplateElement,
		"VariableDeclaration":     decodeVariableDeclaration,
		"VariableDeclarator":      decodeVariableDeclarator,
		"FunctionDeclaration":     decodeFunctionDeclaration,
		"FunctionExpression":      decodeFunctionExpression,
		"ArrowFunctionExpression": decodeArrowFunction,
		"UnaryExpression":         decodeUnary,
		"UpdateExpression":        decodeUpdate,
		"BinaryExpression":        decodeBinary,
		"LogicalExpression":       decodeLogical,
		"AssignmentExpression":    decodeAssignment,
		"MemberExpression":        decodeMember,
		"ThisExpression":          func(fields) (Node, error) { return &ThisExpression{}, nil },
		"CallExpression":          decodeCall,
		"NewExpression":           decodeNew,
		"ConditionalExpression":   decodeConditional,
		"ObjectExpression":        decodeObject,
		"ObjectProperty":          decodeObjectProperty,
		"ArrayExpression":         decodeArray,
		"ExpressionStatement":     decodeExpressionStatement,
		"BlockStatement":          decodeBlock,
		"ReturnStatement":         decodeReturn,
		"IfStatement":             decodeIf,
		"ForStatement":            decodeFor,
		"ForInStatement":          decodeForIn,
	}
}

// Decode builds a syntax tree from a generic document tree, the form
// produced by unmarshalling JSON or YAML into an `any`. Keys a node type
// does not use (positions, comments, extra) are ignored.
func Decode(doc any) (Node, error) {
	return decodeNode(doc, "")
}

func decodeNode(v any, path string) (Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("expected object, got %s", kindOf(v))}
	}
	tag, ok := m["type"].(string)
	if !ok || tag == "" {
		return nil, &DecodeError{Path: path, Message: "missing type tag"}
	}
	dec, ok := decoders[tag]
	if !ok {
		return &Unknown{Tag: tag, Fields: m}, nil
	}
	return dec(fields{m: m, path: path})
}

// fields reads typed values out of one node object.
type fields struct {
	m    map[string]any
	path string
}

func (f fields) at(key string) string {
	if f.path == "" {
		return key
	}
	return f.path + "." + key
}

func (f fields) errorf(key, format string, args ...any) error {
	return &DecodeError{Path: f.at(key), Message: fmt.Sprintf(format, args...)}
}

func (f fields) node(key string) (Node, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil, f.errorf(key, "required field is missing")
	}
	return decodeNode(v, f.at(key))
}

func (f fields) optNode(key string) (Node, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	return decodeNode(v, f.at(key))
}

func (f fields) nodes(key string) ([]Node, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, f.errorf(key, "expected array, got %s", kindOf(v))
	}
	out := make([]Node, 0, len(items))
	for i, item := range items {
		n, err := decodeNode(item, fmt.Sprintf("%s[%d]", f.at(key), i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (f fields) str(key string) (string, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		return "", f.errorf(key, "required field is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", f.errorf(key, "expected string, got %s", kindOf(v))
	}
	return s, nil
}

func (f fields) optStr(key string) string {
	s, _ := f.m[key].(string)
	return s
}

func (f fields) flag(key string) bool {
	b, _ := f.m[key].(bool)
	return b
}

func (f fields) number(key string) (float64, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		return 0, f.errorf(key, "required field is missing")
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case interface{ String() string }:
		// json.Number and friends
		x, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, f.errorf(key, "invalid number %q", n.String())
		}
		return x, nil
	case string:
		// YAML decodes .inf and .nan as floats, but documents may spell them out.
		switch n {
		case "Infinity":
			return math.Inf(1), nil
		case "NaN":
			return math.NaN(), nil
		}
	}
	return 0, f.errorf(key, "expected number, got %s", kindOf(v))
}

func (f fields) identifier(key string) (*Identifier, error) {
	n, err := f.node(key)
	if err != nil {
		return nil, err
	}
	id, ok := n.(*Identifier)
	if !ok {
		return nil, f.errorf(key, "expected Identifier, got %s", n.Type())
	}
	return id, nil
}

func (f fields) optIdentifier(key string) (*Identifier, error) {
	n, err := f.optNode(key)
	if err != nil || n == nil {
		return nil, err
	}
	id, ok := n.(*Identifier)
	if !ok {
		return nil, f.errorf(key, "expected Identifier, got %s", n.Type())
	}
	return id, nil
}

func (f fields) block(key string) (*BlockStatement, error) {
	n, err := f.node(key)
	if err != nil {
		return nil, err
	}
	b, ok := n.(*BlockStatement)
	if !ok {
		return nil, f.errorf(key, "expected BlockStatement, got %s", n.Type())
	}
	return b, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func decodeFile(f fields) (Node, error) {
	n, err := f.node("program")
	if err != nil {
		return nil, err
	}
	prog, ok := n.(*Program)
	if !ok {
		return nil, f.errorf("program", "expected Program, got %s", n.Type())
	}
	return &File{Program: prog}, nil
}

func decodeProgram(f fields) (Node, error) {
	body, err := f.nodes("body")
	if err != nil {
		return nil, err
	}
	return &Program{Body: body}, nil
}

func decodeIdentifier(f fields) (Node, error) {
	name, err := f.str("name")
	if err != nil {
		return nil, err
	}
	return &Identifier{Name: name}, nil
}

func decodeStringLiteral(f fields) (Node, error) {
	v, err := f.str("value")
	if err != nil {
		return nil, err
	}
	return &StringLiteral{Value: v}, nil
}

func decodeNumericLiteral(f fields) (Node, error) {
	v, err := f.number("value")
	if err != nil {
		return nil, err
	}
	return &NumericLiteral{Value: v}, nil
}

func decodeBooleanLiteral(f fields) (Node, error) {
	v, ok := f.m["value"].(bool)
	if !ok {
		return nil, f.errorf("value", "expected boolean, got %s", kindOf(f.m["value"]))
	}
	return &BooleanLiteral{Value: v}, nil
}

func decodeTemplateLiteral(f fields) (Node, error) {
	quasis, err := f.nodes("quasis")
	if err != nil {
		return nil, err
	}
	exprs, err := f.nodes("expressions")
	if err != nil {
		return nil, err
	}
	lit := &TemplateLiteral{Expressions: exprs}
	for i, q := range quasis {
		el, ok := q.(*TemplateElement)
		if !ok {
			return nil, f.errorf(fmt.Sprintf("quasis[%d]", i), "expected TemplateElement, got %s", q.Type())
		}
		lit.Quasis = append(lit.Quasis, el)
	}
	return lit, nil
}

func decodeTemplateElement(f fields) (Node, error) {
	el := &TemplateElement{Tail: f.flag("tail")}
	switch v := f.m["value"].(type) {
	case map[string]any:
		el.Raw, _ = v["raw"].(string)
		el.Cooked, _ = v["cooked"].(string)
	case nil:
	default:
		return nil, f.errorf("value", "expected object, got %s", kindOf(v))
	}
	return el, nil
}

func decodeVariableDeclaration(f fields) (Node, error) {
	decls, err := f.nodes("declarations")
	if err != nil {
		return nil, err
	}
	out := &VariableDeclaration{Kind: f.optStr("kind")}
	for i, d := range decls {
		vd, ok := d.(*VariableDeclarator)
		if !ok {
			return nil, f.errorf(fmt.Sprintf("declarations[%d]", i), "expected VariableDeclarator, got %s", d.Type())
		}
		out.Declarations = append(out.Declarations, vd)
	}
	return out, nil
}

func decodeVariableDeclarator(f fields) (Node, error) {
	id, err := f.node("id")
	if err != nil {
		return nil, err
	}
	initNode, err := f.optNode("init")
	if err != nil {
		return nil, err
	}
	return &VariableDeclarator{ID: id, Init: initNode}, nil
}

func decodeFunctionDeclaration(f fields) (Node, error) {
	id, err := f.identifier("id")
	if err != nil {
		return nil, err
	}
	params, err := f.nodes("params")
	if err != nil {
		return nil, err
	}
	body, err := f.block("body")
	if err != nil {
		return nil, err
	}
	return &FunctionDeclaration{ID: id, Params: params, Body: body}, nil
}

func decodeFunctionExpression(f fields) (Node, error) {
	id, err := f.optIdentifier("id")
	if err != nil {
		return nil, err
	}
	params, err := f.nodes("params")
	if err != nil {
		return nil, err
	}
	body, err := f.block("body")
	if err != nil {
		return nil, err
	}
	return &FunctionExpression{ID: id, Params: params, Body: body}, nil
}

func decodeArrowFunction(f fields) (Node, error) {
	params, err := f.nodes("params")
	if err != nil {
		return nil, err
	}
	body, err := f.node("body")
	if err != nil {
		return nil, err
	}
	expr := f.flag("expression")
	if _, ok := f.m["expression"]; !ok {
		// ESTree producers that omit the flag still distinguish by body shape.
		_, isBlock := body.(*BlockStatement)
		expr = !isBlock
	}
	return &ArrowFunctionExpression{Params: params, Body: body, Expression: expr}, nil
}

func decodeUnary(f fields) (Node, error) {
	op, err := f.str("operator")
	if err != nil {
		return nil, err
	}
	arg, err := f.node("argument")
	if err != nil {
		return nil, err
	}
	return &UnaryExpression{Operator: op, Prefix: f.flag("prefix"), Argument: arg}, nil
}

func decodeUpdate(f fields) (Node, error) {
	op, err := f.str("operator")
	if err != nil {
		return nil, err
	}
	arg, err := f.node("argument")
	if err != nil {
		return nil, err
	}
	return &UpdateExpression{Operator: op, Prefix: f.flag("prefix"), Argument: arg}, nil
}

// operands decodes the operator/left/right triple shared by binary,
// logical and assignment expressions.
func (f fields) operands() (op string, left, right Node, err error) {
	if op, err = f.str("operator"); err != nil {
		return
	}
	if left, err = f.node("left"); err != nil {
		return
	}
	right, err = f.node("right")
	return
}

func decodeBinary(f fields) (Node, error) {
	op, l, r, err := f.operands()
	if err != nil {
		return nil, err
	}
	return &BinaryExpression{Operator: op, Left: l, Right: r}, nil
}

func decodeLogical(f fields) (Node, error) {
	op, l, r, err := f.operands()
	if err != nil {
		return nil, err
	}
	return &LogicalExpression{Operator: op, Left: l, Right: r}, nil
}

func decodeAssignment(f fields) (Node, error) {
	op, l, r, err := f.operands()
	if err != nil {
		return nil, err
	}
	return &AssignmentExpression{Operator: op, Left: l, Right: r}, nil
}

func decodeMember(f fields) (Node, error) {
	obj, err := f.node("object")
	if err != nil {
		return nil, err
	}
	prop, err := f.node("property")
	if err != nil {
		return nil, err
	}
	return &MemberExpression{Object: obj, Property: prop, Computed: f.flag("computed")}, nil
}

func decodeCall(f fields) (Node, error) {
	callee, err := f.node("callee")
	if err != nil {
		return nil, err
	}
	args, err := f.nodes("arguments")
	if err != nil {
		return nil, err
	}
	return &CallExpression{Callee: callee, Arguments: args}, nil
}

func decodeNew(f fields) (Node, error) {
	callee, err := f.node("callee")
	if err != nil {
		return nil, err
	}
	args, err := f.nodes("arguments")
	if err != nil {
		return nil, err
	}
	return &NewExpression{Callee: callee, Arguments: args}, nil
}

func decodeConditional(f fields) (Node, error) {
	test, err := f.node("test")
	if err != nil {
		return nil, err
	}
	cons, err := f.node("consequent")
	if err != nil {
		return nil, err
	}
	alt, err := f.node("alternate")
	if err != nil {
		return nil, err
	}
	return &ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}, nil
}

func decodeObject(f fields) (Node, error) {
	props, err := f.nodes("properties")
	if err != nil {
		return nil, err
	}
	return &ObjectExpression{Properties: props}, nil
}

func decodeObjectProperty(f fields) (Node, error) {
	key, err := f.node("key")
	if err != nil {
		return nil, err
	}
	value, err := f.node("value")
	if err != nil {
		return nil, err
	}
	return &ObjectProperty{Key: key, Value: value, Computed: f.flag("computed")}, nil
}

func decodeArray(f fields) (Node, error) {
	elems, err := f.nodes("elements")
	if err != nil {
		return nil, err
	}
	return &ArrayExpression{Elements: elems}, nil
}

func decodeExpressionStatement(f fields) (Node, error) {
	expr, err := f.node("expression")
	if err != nil {
		return nil, err
	}
	return &ExpressionStatement{Expression: expr}, nil
}

func decodeBlock(f fields) (Node, error) {
	body, err := f.nodes("body")
	if err != nil {
		return nil, err
	}
	return &BlockStatement{Body: body}, nil
}

func decodeReturn(f fields) (Node, error) {
	arg, err := f.optNode("argument")
	if err != nil {
		return nil, err
	}
	return &ReturnStatement{Argument: arg}, nil
}

func decodeIf(f fields) (Node, error) {
	test, err := f.node("test")
	if err != nil {
		return nil, err
	}
	cons, err := f.node("consequent")
	if err != nil {
		return nil, err
	}
	alt, err := f.optNode("alternate")
	if err != nil {
		return nil, err
	}
	return &IfStatement{Test: test, Consequent: cons, Alternate: alt}, nil
}

func decodeFor(f fields) (Node, error) {
	initNode, err := f.optNode("init")
	if err != nil {
		return nil, err
	}
	test, err := f.optNode("test")
	if err != nil {
		return nil, err
	}
	update, err := f.optNode("update")
	if err != nil {
		return nil, err
	}
	body, err := f.node("body")
	if err != nil {
		return nil, err
	}
	return &ForStatement{Init: initNode, Test: test, Update: update, Body: body}, nil
}

func decodeForIn(f fields) (Node, error) {
	left, err := f.node("left")
	if err != nil {
		return nil, err
	}
	right, err := f.node("right")
	if err != nil {
		return nil, err
	}
	body, err := f.node("body")
	if err != nil {
		return nil, err
	}
	return &ForInStatement{Left: left, Right: right, Body: body}, nil
}
