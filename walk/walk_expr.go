package walk

import (
	"tigerc/ast"
	"tigerc/types"
)

// walkExpr types an expression.
func (w *Walker) walkExpr(expr ast.Expr) types.Type {
	switch v := expr.(type) {
	case *ast.NilExpr:
		return types.PrimNil
	case *ast.IntExpr:
		return types.PrimInt
	case *ast.StringExpr:
		return types.PrimString
	case *ast.VarExpr:
		return w.walkVar(v)
	case *ast.CallExpr:
		return w.walkCall(v)
	case *ast.OpExpr:
		return w.walkOp(v)
	case *ast.RecordExpr:
		return w.walkRecord(v)
	case *ast.ArrayExpr:
		return w.walkArray(v)
	case *ast.AssignExpr:
		return w.walkAssign(v)
	case *ast.IfExpr:
		return w.walkIf(v)
	case *ast.WhileExpr:
		return w.walkWhile(v)
	case *ast.ForExpr:
		return w.walkFor(v)
	case *ast.BreakExpr:
		if w.loopDepth == 0 {
			w.error(v.Span(), "break must be inside a loop")
		}
		return types.PrimVoid
	case *ast.LetExpr:
		return w.walkLet(v)
	case *ast.SeqExpr:
		return w.walkSeq(v.Exprs)
	default:
		w.error(expr.Span(), "unsupported expression")
		return nil
	}
}

// walkVar types an lvalue.
func (w *Walker) walkVar(v *ast.VarExpr) types.Type {
	switch v.Kind {
	case ast.FieldVar:
		baseType := w.walkVar(v.Var)

		rt, ok := types.AsRecord(baseType)
		if !ok {
			w.error(v.Span(), "field access on non-record type %s", baseType.Repr())
		}

		fieldType, ok := rt.FieldType(v.Name)
		if !ok {
			w.error(v.Span(), "record %s has no field named `%s`", rt.Repr(), v.Name)
		}

		return fieldType
	case ast.SubscriptVar:
		baseType := w.walkVar(v.Var)

		at, ok := types.AsArray(baseType)
		if !ok {
			w.error(v.Span(), "subscript of non-array type %s", baseType.Repr())
		}

		w.mustInt(w.walkExpr(v.Index), "array index", v.Index.Span())
		return at.Elem
	default:
		entry, ok := w.lookupValue(v.Name)
		if !ok {
			w.error(v.Span(), "undefined variable: `%s`", v.Name)
		}

		varEntry, ok := entry.(*VarEntry)
		if !ok {
			w.error(v.Span(), "`%s` is a function, not a variable", v.Name)
		}

		return varEntry.Type
	}
}

// walkCall types a function call.
func (w *Walker) walkCall(v *ast.CallExpr) types.Type {
	entry, ok := w.lookupValue(v.Func)
	if !ok {
		w.error(v.Span(), "undefined function: `%s`", v.Func)
	}

	funcEntry, ok := entry.(*FuncEntry)
	if !ok {
		w.error(v.Span(), "`%s` is a variable, not a function", v.Func)
	}

	if len(v.Args) != len(funcEntry.Params) {
		w.error(v.Span(), "function `%s` expects %d arguments, got %d",
			v.Func, len(funcEntry.Params), len(v.Args))
	}

	for i, arg := range v.Args {
		argType := w.walkExpr(arg)
		w.mustAssignable(funcEntry.Params[i], argType, "call to `"+v.Func+"`", arg.Span())
	}

	return funcEntry.Result
}

// walkOp types a binary operator application.
func (w *Walker) walkOp(v *ast.OpExpr) types.Type {
	leftType := w.walkExpr(v.Left)
	rightType := w.walkExpr(v.Right)

	switch v.Op {
	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDivide:
		w.mustInt(leftType, "left operand of arithmetic operator", v.Left.Span())
		w.mustInt(rightType, "right operand of arithmetic operator", v.Right.Span())
	case ast.OpAnd, ast.OpOr:
		w.mustInt(leftType, "left operand of logical operator", v.Left.Span())
		w.mustInt(rightType, "right operand of logical operator", v.Right.Span())
	default:
		w.checkComparison(v, leftType, rightType)
	}

	return types.PrimInt
}

// checkComparison validates the operand types of a comparison operator.
// Operands must have equal types drawn from int, string, record, or array;
// nil may pair with a record under `=` and `<>` only.
func (w *Walker) checkComparison(v *ast.OpExpr, leftType, rightType types.Type) {
	if !types.Equals(leftType, rightType) {
		w.error(v.Span(), "comparison operands must have the same type (got %s and %s)",
			leftType.Repr(), rightType.Repr())
	}

	// Resolve nil against the other operand: a nil-record pairing compares
	// as the record type.
	opType := types.Actual(leftType)
	if types.IsNil(opType) {
		opType = types.Actual(rightType)
	}

	if types.IsNil(opType) {
		w.error(v.Span(), "cannot compare nil with nil")
	}

	if types.IsRecord(opType) && v.Op != ast.OpEq && v.Op != ast.OpNeq {
		if types.IsNil(leftType) || types.IsNil(rightType) {
			w.error(v.Span(), "nil is only comparable with `=` and `<>`")
		}
	}

	switch opType.(type) {
	case types.PrimType, *types.RecordType, *types.ArrayType:
		if types.IsVoid(opType) {
			w.error(v.Span(), "comparison operands must produce values")
		}
	default:
		w.error(v.Span(), "type %s is not comparable", opType.Repr())
	}
}

// walkRecord types a record creation expression.  Fields must be given in
// declaration order with matching names.
func (w *Walker) walkRecord(v *ast.RecordExpr) types.Type {
	typ, ok := w.lookupType(v.TypeID)
	if !ok {
		w.error(v.Span(), "undefined type: `%s`", v.TypeID)
	}

	rt, ok := types.AsRecord(typ)
	if !ok {
		w.error(v.Span(), "type `%s` is not a record type", v.TypeID)
	}

	if len(v.Fields) != len(rt.Fields) {
		w.error(v.Span(), "record `%s` expects %d fields, got %d",
			v.TypeID, len(rt.Fields), len(v.Fields))
	}

	for i, field := range v.Fields {
		if field.Name != rt.Fields[i].Name {
			w.error(field.Value.Span(), "field `%s` not found or out of order in record `%s`",
				field.Name, v.TypeID)
		}

		valueType := w.walkExpr(field.Value)
		w.mustAssignable(rt.Fields[i].Type, valueType, "field `"+field.Name+"`", field.Value.Span())
	}

	return typ
}

// walkArray types an array creation expression.
func (w *Walker) walkArray(v *ast.ArrayExpr) types.Type {
	typ, ok := w.lookupType(v.TypeID)
	if !ok {
		w.error(v.Span(), "undefined type: `%s`", v.TypeID)
	}

	at, ok := types.AsArray(typ)
	if !ok {
		w.error(v.Span(), "type `%s` is not an array type", v.TypeID)
	}

	w.mustInt(w.walkExpr(v.Size), "array size", v.Size.Span())

	initType := w.walkExpr(v.Init)
	w.mustAssignable(at.Elem, initType, "array initialization", v.Init.Span())

	return typ
}

// walkAssign types an assignment.  Loop variables are read-only.
func (w *Walker) walkAssign(v *ast.AssignExpr) types.Type {
	varType := w.walkVar(v.Var)

	if v.Var.Kind == ast.SimpleVar {
		if entry, ok := w.lookupValue(v.Var.Name); ok {
			if varEntry, ok := entry.(*VarEntry); ok && varEntry.ReadOnly {
				w.error(v.Span(), "cannot assign to loop variable `%s`", v.Var.Name)
			}
		}
	}

	exprType := w.walkExpr(v.Expr)
	w.mustAssignable(varType, exprType, "assignment", v.Expr.Span())

	return types.PrimVoid
}

// walkIf types a conditional.  With an else branch both arms must agree;
// without one the then branch must produce no value.
func (w *Walker) walkIf(v *ast.IfExpr) types.Type {
	w.mustInt(w.walkExpr(v.Test), "if condition", v.Test.Span())

	thenType := w.walkExpr(v.Then)

	if v.Else == nil {
		w.mustVoid(thenType, "if-then without else", v.Then.Span())
		return types.PrimVoid
	}

	elseType := w.walkExpr(v.Else)
	if !types.Equals(thenType, elseType) {
		w.error(v.Span(), "if-then-else branches must have the same type (got %s and %s)",
			thenType.Repr(), elseType.Repr())
	}

	return thenType
}

// walkWhile types a while loop.
func (w *Walker) walkWhile(v *ast.WhileExpr) types.Type {
	w.mustInt(w.walkExpr(v.Test), "while condition", v.Test.Span())

	w.loopDepth++
	bodyType := w.walkExpr(v.Body)
	w.loopDepth--

	w.mustVoid(bodyType, "while loop body", v.Body.Span())

	return types.PrimVoid
}

// walkFor types a for loop.  The loop variable is bound read-only to int in
// a scope of its own.
func (w *Walker) walkFor(v *ast.ForExpr) types.Type {
	w.mustInt(w.walkExpr(v.Lo), "for loop lower bound", v.Lo.Span())
	w.mustInt(w.walkExpr(v.Hi), "for loop upper bound", v.Hi.Span())

	w.pushScope()
	w.defineValue(v.Var, &VarEntry{Type: types.PrimInt, ReadOnly: true})

	w.loopDepth++
	bodyType := w.walkExpr(v.Body)
	w.loopDepth--

	w.popScope()

	w.mustVoid(bodyType, "for loop body", v.Body.Span())

	return types.PrimVoid
}

// walkLet types a let expression: declarations in batches, then the body
// sequence.
func (w *Walker) walkLet(v *ast.LetExpr) types.Type {
	w.pushScope()
	w.walkDecls(v.Decls)
	result := w.walkSeq(v.Body)
	w.popScope()

	return result
}

// walkSeq types an expression sequence.  An empty sequence is void; a
// nonempty one has the type of its last expression.
func (w *Walker) walkSeq(exprs []ast.Expr) types.Type {
	result := types.Type(types.PrimVoid)
	for _, expr := range exprs {
		result = w.walkExpr(expr)
	}

	return result
}
