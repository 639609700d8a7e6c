// Package walk implements semantic analysis for Tiger: name resolution over
// the language's two namespaces, type checking, and validation of loop and
// declaration structure.  The walker owns a pair of scope-stacked symbol
// tables (one for types, one for values) and a type context; all of its
// state is transient per program.
package walk

import (
	"tigerc/ast"
	"tigerc/report"
	"tigerc/types"
)

// ValueEntry is an entry in the value namespace, which variables and
// functions share.
type ValueEntry interface {
	isValueEntry()
}

// VarEntry is a variable binding.  ReadOnly is set for for-loop indices.
type VarEntry struct {
	Type     types.Type
	ReadOnly bool
}

// FuncEntry is a function binding.
type FuncEntry struct {
	Params []types.Type
	Result types.Type
}

func (*VarEntry) isValueEntry()  {}
func (*FuncEntry) isValueEntry() {}

// -----------------------------------------------------------------------------

// Walker performs semantic analysis over a Tiger program.
type Walker struct {
	// ctx is the type context minting fresh record and array identities.
	ctx *types.Context

	// The stack of type-namespace scopes.
	typeScopes []map[string]types.Type

	// The stack of value-namespace scopes (variables and functions).
	valueScopes []map[string]ValueEntry

	// The number of enclosing loops; break is legal when positive.
	loopDepth int

	// The result type of the enclosing function, nil at top level.
	returnType types.Type
}

// NewWalker creates a walker whose global scope holds the built-in types and
// functions.
func NewWalker(ctx *types.Context) *Walker {
	w := &Walker{ctx: ctx}

	w.pushScope()
	w.defineBuiltins()

	return w
}

// Walk type-checks a program and returns the type of its root expression.
func (w *Walker) Walk(expr ast.Expr) (typ types.Type, err error) {
	defer report.Catch(&err)

	w.pushScope()
	typ = w.walkExpr(expr)
	w.popScope()

	return typ, nil
}

// -----------------------------------------------------------------------------

func (w *Walker) pushScope() {
	w.typeScopes = append(w.typeScopes, make(map[string]types.Type))
	w.valueScopes = append(w.valueScopes, make(map[string]ValueEntry))
}

func (w *Walker) popScope() {
	w.typeScopes = w.typeScopes[:len(w.typeScopes)-1]
	w.valueScopes = w.valueScopes[:len(w.valueScopes)-1]
}

// defineType binds a type name in the current scope.
func (w *Walker) defineType(name string, typ types.Type) {
	w.typeScopes[len(w.typeScopes)-1][name] = typ
}

// defineValue binds a variable or function name in the current scope.
func (w *Walker) defineValue(name string, entry ValueEntry) {
	w.valueScopes[len(w.valueScopes)-1][name] = entry
}

// lookupType resolves a type name, searching inner scopes first.
func (w *Walker) lookupType(name string) (types.Type, bool) {
	for i := len(w.typeScopes) - 1; i >= 0; i-- {
		if typ, ok := w.typeScopes[i][name]; ok {
			return typ, true
		}
	}

	return nil, false
}

// lookupValue resolves a variable or function name, searching inner scopes
// first.
func (w *Walker) lookupValue(name string) (ValueEntry, bool) {
	for i := len(w.valueScopes) - 1; i >= 0; i-- {
		if entry, ok := w.valueScopes[i][name]; ok {
			return entry, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// error raises a semantic error that aborts the walk.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	report.RaiseSemantic(span, msg, args...)
}

// mustAssignable checks that a value of the given type can initialize or be
// assigned to a target of the given type.
func (w *Walker) mustAssignable(target, value types.Type, what string, span *report.TextSpan) {
	if !types.IsAssignable(target, value) {
		w.error(span, "type mismatch in %s (expected %s, got %s)", what, target.Repr(), value.Repr())
	}
}

// mustInt checks that the given type resolves to int.
func (w *Walker) mustInt(typ types.Type, what string, span *report.TextSpan) {
	if !types.IsInt(typ) {
		w.error(span, "%s must be int, got %s", what, typ.Repr())
	}
}

// mustVoid checks that the given type is void: that the expression produces
// no value.
func (w *Walker) mustVoid(typ types.Type, what string, span *report.TextSpan) {
	if !types.IsVoid(typ) {
		w.error(span, "%s must produce no value, got %s", what, typ.Repr())
	}
}

// -----------------------------------------------------------------------------

// defineBuiltins populates the outermost scope with the built-in types and
// the standard library functions the runtime provides.
func (w *Walker) defineBuiltins() {
	intTy := types.PrimInt
	stringTy := types.PrimString
	voidTy := types.PrimVoid

	w.defineType("int", intTy)
	w.defineType("string", stringTy)

	w.defineValue("print", &FuncEntry{Params: []types.Type{stringTy}, Result: voidTy})
	w.defineValue("printi", &FuncEntry{Params: []types.Type{intTy}, Result: voidTy})
	w.defineValue("flush", &FuncEntry{Result: voidTy})
	w.defineValue("getchar", &FuncEntry{Result: stringTy})
	w.defineValue("ord", &FuncEntry{Params: []types.Type{stringTy}, Result: intTy})
	w.defineValue("chr", &FuncEntry{Params: []types.Type{intTy}, Result: stringTy})
	w.defineValue("size", &FuncEntry{Params: []types.Type{stringTy}, Result: intTy})
	w.defineValue("substring", &FuncEntry{Params: []types.Type{stringTy, intTy, intTy}, Result: stringTy})
	w.defineValue("concat", &FuncEntry{Params: []types.Type{stringTy, stringTy}, Result: stringTy})
	w.defineValue("not", &FuncEntry{Params: []types.Type{intTy}, Result: intTy})
	w.defineValue("exit", &FuncEntry{Params: []types.Type{intTy}, Result: voidTy})
}
