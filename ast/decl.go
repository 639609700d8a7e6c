package ast

// Decl is the interface for declarations inside a let expression.
type Decl interface {
	Node
}

// TypeDecl is `type name = type-ast`.
type TypeDecl struct {
	NodeBase

	Name string
	Type TypeAST
}

// VarDecl is `var name [: type-id] := init`.  TypeID is empty when the
// declaration carries no type annotation.  Escape is set by the escape
// analyzer.
type VarDecl struct {
	NodeBase

	Name   string
	TypeID string
	Init   Expr
	Escape bool
}

// Field is a parameter or record-type field: `name : type-id`.  Escape is
// meaningful only for function parameters.
type Field struct {
	Name   string
	TypeID string
	Escape bool
}

// FuncDecl is `function name(params) [: result-type-id] = body`.  ResultID
// is empty for procedures.
type FuncDecl struct {
	NodeBase

	Name     string
	Params   []*Field
	ResultID string
	Body     Expr
}

// -----------------------------------------------------------------------------

// TypeAST is the interface for the syntactic right-hand side of a type
// declaration.
type TypeAST interface {
	Node
}

// NameTypeAST is a reference to a named type.
type NameTypeAST struct {
	NodeBase

	Name string
}

// RecordTypeAST is `{ f1: t1, f2: t2, ... }`.
type RecordTypeAST struct {
	NodeBase

	Fields []*Field
}

// ArrayTypeAST is `array of element-type-id`.
type ArrayTypeAST struct {
	NodeBase

	ElemID string
}
