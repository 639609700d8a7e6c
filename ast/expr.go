package ast

// Expr is the interface for all Tiger expressions.  Every Tiger construct is
// an expression; declarations appear only inside LetExpr.
type Expr interface {
	Node
}

// NilExpr is the literal `nil`.
type NilExpr struct {
	NodeBase
}

// IntExpr is an integer literal.
type IntExpr struct {
	NodeBase

	Value int
}

// StringExpr is a string literal with escapes already resolved.
type StringExpr struct {
	NodeBase

	Value string
}

// Enumeration of lvalue kinds.
const (
	SimpleVar    = iota // a plain identifier
	FieldVar            // base.field
	SubscriptVar        // base[index]
)

// VarExpr is an lvalue: a simple variable, a record field access, or an
// array subscript.  For FieldVar, Name holds the field name and Var the base
// lvalue.  For SubscriptVar, Var holds the base lvalue and Index the
// subscript expression.
type VarExpr struct {
	NodeBase

	Kind  int
	Name  string
	Var   *VarExpr
	Index Expr
}

// Enumeration of binary operators.
const (
	OpPlus = iota
	OpMinus
	OpTimes
	OpDivide
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

// OpExpr is a binary operator application.
type OpExpr struct {
	NodeBase

	Op          int
	Left, Right Expr
}

// CallExpr is a function call.
type CallExpr struct {
	NodeBase

	Func string
	Args []Expr
}

// RecordField is one `name = value` entry in a record creation expression.
type RecordField struct {
	Name  string
	Value Expr
}

// RecordExpr is a record creation expression `type-id { f1 = e1, ... }`.
type RecordExpr struct {
	NodeBase

	TypeID string
	Fields []RecordField
}

// ArrayExpr is an array creation expression `type-id [size] of init`.
type ArrayExpr struct {
	NodeBase

	TypeID string
	Size   Expr
	Init   Expr
}

// AssignExpr is an assignment `lvalue := expr`.
type AssignExpr struct {
	NodeBase

	Var  *VarExpr
	Expr Expr
}

// IfExpr is `if test then Then [else Else]`.  Else is nil when absent.
type IfExpr struct {
	NodeBase

	Test Expr
	Then Expr
	Else Expr
}

// WhileExpr is `while test do body`.
type WhileExpr struct {
	NodeBase

	Test Expr
	Body Expr
}

// ForExpr is `for var := lo to hi do body`.  Escape is set by the escape
// analyzer when the loop variable is captured by an inner function.
type ForExpr struct {
	NodeBase

	Var    string
	Lo, Hi Expr
	Body   Expr
	Escape bool
}

// BreakExpr is the `break` expression.
type BreakExpr struct {
	NodeBase
}

// LetExpr is `let decls in body end`.  The body is an expression sequence.
type LetExpr struct {
	NodeBase

	Decls []Decl
	Body  []Expr
}

// SeqExpr is a parenthesized expression sequence `(e1; e2; ...)`.
type SeqExpr struct {
	NodeBase

	Exprs []Expr
}
