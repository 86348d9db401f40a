// Package ast defines the JavaScript syntax tree consumed by the renderer.
//
// The node set mirrors the babel "File/Program" JSON shape. It is closed:
// every supported tag has one struct, and any other tag decodes into
// *Unknown so callers can still report it.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	// Type returns the babel type tag, e.g. "BinaryExpression".
	Type() string
	node()
}

// File is the document root produced by the parser.
type File struct {
	Program *Program
}

// Program holds the top-level statements of a file.
type Program struct {
	Body []Node
}

// Identifier is a bare name.
type Identifier struct {
	Name string
}

// StringLiteral is a quoted string. Value is the cooked value.
type StringLiteral struct {
	Value string
}

// NumericLiteral is a number literal.
type NumericLiteral struct {
	Value float64
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is the null keyword.
type NullLiteral struct{}

// TemplateLiteral is a backtick string. Quasis and Expressions alternate,
// starting and ending with a quasi.
type TemplateLiteral struct {
	Quasis      []*TemplateElement
	Expressions []Node
}

// TemplateElement is one literal chunk (quasi) of a template literal.
type TemplateElement struct {
	Raw    string
	Cooked string
	Tail   bool
}

// VariableDeclaration is a var/let/const statement.
type VariableDeclaration struct {
	Kind         string
	Declarations []*VariableDeclarator
}

// VariableDeclarator binds one name, optionally with an initializer.
type VariableDeclarator struct {
	ID   Node
	Init Node // nil when absent
}

// FunctionDeclaration is a named function statement.
type FunctionDeclaration struct {
	ID     *Identifier
	Params []Node
	Body   *BlockStatement
}

// FunctionExpression is a function used as a value.
type FunctionExpression struct {
	ID     *Identifier // nil for anonymous functions
	Params []Node
	Body   *BlockStatement
}

// ArrowFunctionExpression is an arrow function. Expression reports
// whether Body is an expression rather than a block.
type ArrowFunctionExpression struct {
	Params     []Node
	Body       Node
	Expression bool
}

// UnaryExpression applies a unary operator such as ! or typeof.
type UnaryExpression struct {
	Operator string
	Prefix   bool
	Argument Node
}

// UpdateExpression is ++ or -- applied to an operand.
type UpdateExpression struct {
	Operator string
	Prefix   bool
	Argument Node
}

// BinaryExpression is an arithmetic or comparison expression.
type BinaryExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// LogicalExpression is an && or || expression.
type LogicalExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// AssignmentExpression assigns Right to Left. Operator is "=" or a
// compound form such as "+=", which the renderer writes as "=".
type AssignmentExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// MemberExpression is obj.prop or obj[prop].
type MemberExpression struct {
	Object   Node
	Property Node
	Computed bool
}

// ThisExpression is the this keyword.
type ThisExpression struct{}

// CallExpression is callee(args...).
type CallExpression struct {
	Callee    Node
	Arguments []Node
}

// NewExpression is new callee(args...).
type NewExpression struct {
	Callee    Node
	Arguments []Node
}

// ConditionalExpression is test ? consequent : alternate.
type ConditionalExpression struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

// ObjectExpression is an object literal. Properties are usually
// *ObjectProperty; other property kinds decode as *Unknown.
type ObjectExpression struct {
	Properties []Node
}

// ObjectProperty is one key: value entry of an object literal.
type ObjectProperty struct {
	Key      Node
	Value    Node
	Computed bool
}

// ArrayExpression is an array literal.
type ArrayExpression struct {
	Elements []Node
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Expression Node
}

// BlockStatement is a braced statement list.
type BlockStatement struct {
	Body []Node
}

// ReturnStatement returns an optional value.
type ReturnStatement struct {
	Argument Node // nil for a bare return
}

// IfStatement is if/else. Alternate is nil, a block, another
// *IfStatement (else if), or a single statement.
type IfStatement struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

// ForStatement is a C-style counted loop. Init, Test and Update may be nil.
type ForStatement struct {
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

// ForInStatement is for (left in right).
type ForInStatement struct {
	Left  Node
	Right Node
	Body  Node
}

// Unknown carries a node whose tag is outside the supported set.
type Unknown struct {
	Tag    string
	Fields map[string]any
}

func (*File) Type() string                    { return "File" }
func (*Program) Type() string                 { return "Program" }
func (*Identifier) Type() string              { return "Identifier" }
func (*StringLiteral) Type() string           { return "StringLiteral" }
func (*NumericLiteral) Type() string          { return "NumericLiteral" }
func (*BooleanLiteral) Type() string          { return "BooleanLiteral" }
func (*NullLiteral) Type() string             { return "NullLiteral" }
func (*TemplateLiteral) Type() string         { return "TemplateLiteral" }
func (*TemplateElement) Type() string         { return "TemplateElement" }
func (*VariableDeclaration) Type() string     { return "VariableDeclaration" }
func (*VariableDeclarator) Type() string      { return "VariableDeclarator" }
func (*FunctionDeclaration) Type() string     { return "FunctionDeclaration" }
func (*FunctionExpression) Type() string      { return "FunctionExpression" }
func (*ArrowFunctionExpression) Type() string { return "ArrowFunctionExpression" }
func (*UnaryExpression) Type() string         { return "UnaryExpression" }
func (*UpdateExpression) Type() string        { return "UpdateExpression" }
func (*BinaryExpression) Type() string        { return "BinaryExpression" }
func (*LogicalExpression) Type() string       { return "LogicalExpression" }
func (*AssignmentExpression) Type() string    { return "AssignmentExpression" }
func (*MemberExpression) Type() string        { return "MemberExpression" }
func (*ThisExpression) Type() string          { return "ThisExpression" }
func (*CallExpression) Type() string          { return "CallExpression" }
func (*NewExpression) Type() string           { return "NewExpression" }
func (*ConditionalExpression) Type() string   { return "ConditionalExpression" }
func (*ObjectExpression) Type() string        { return "ObjectExpression" }
func (*ObjectProperty) Type() string          { return "ObjectProperty" }
func (*ArrayExpression) Type() string         { return "ArrayExpression" }
func (*ExpressionStatement) Type() string     { return "ExpressionStatement" }
func (*BlockStatement) Type() string          { return "BlockStatement" }
func (*ReturnStatement) Type() string         { return "ReturnStatement" }
func (*IfStatement) Type() string             { return "IfStatement" }
func (*ForStatement) Type() string            { return "ForStatement" }
func (*ForInStatement) Type() string          { return "ForInStatement" }

// Type returns the unsupported tag as it appeared in the document.
func (u *Unknown) Type() string { return u.Tag }

func (*File) node()                    {}
func (*Program) node()                 {}
func (*Identifier) node()              {}
func (*StringLiteral) node()           {}
func (*NumericLiteral) node()          {}
func (*BooleanLiteral) node()          {}
func (*NullLiteral) node()             {}
func (*TemplateLiteral) node()         {}
func (*TemplateElement) node()         {}
func (*VariableDeclaration) node()     {}
func (*VariableDeclarator) node()      {}
func (*FunctionDeclaration) node()     {}
func (*FunctionExpression) node()      {}
func (*ArrowFunctionExpression) node() {}
func (*UnaryExpression) node()         {}
func (*UpdateExpression) node()        {}
func (*BinaryExpression) node()        {}
func (*LogicalExpression) node()       {}
func (*AssignmentExpression) node()    {}
func (*MemberExpression) node()        {}
func (*ThisExpression) node()          {}
func (*CallExpression) node()          {}
func (*NewExpression) node()           {}
func (*ConditionalExpression) node()   {}
func (*ObjectExpression) node()        {}
func (*ObjectProperty) node()          {}
func (*ArrayExpression) node()         {}
func (*ExpressionStatement) node()     {}
func (*BlockStatement) node()          {}
func (*ReturnStatement) node()         {}
func (*IfStatement) node()             {}
func (*ForStatement) node()            {}
func (*ForInStatement) node()          {}
func (*Unknown) node()                 {}

// SupportedTypes lists every tag the package decodes into a concrete node,
// in the order the renderer documents them.
var SupportedTypes = []string{
	"File",
	"Program",
	"Identifier",
	"StringLiteral",
	"NumericLiteral",
	"BooleanLiteral",
	"TemplateLiteral",
	"TemplateElement",
	"NullLiteral",
	"VariableDeclaration",
	"VariableDeclarator",
	"FunctionDeclaration",
	"UnaryExpression",
	"BinaryExpression",
	"ArrowFunctionExpression",
	"MemberExpression",
	"LogicalExpression",
	"ThisExpression",
	"FunctionExpression",
	"CallExpression",
	"ExpressionStatement",
	"BlockStatement",
	"ReturnStatement",
	"ConditionalExpression",
	"IfStatement",
	"ObjectExpression",
	"ObjectProperty",
	"AssignmentExpression",
	"ForInStatement",
	"ArrayExpression",
	"ForStatement",
	"NewExpression",
	"UpdateExpression",
}

// IsSupported reports whether tag decodes into a concrete node type.
func IsSupported(tag string) bool {
	_, ok := decoders[tag]
	return ok
}
