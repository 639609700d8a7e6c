package translate

import (
	"tigerc/ast"
	"tigerc/temp"
	"tigerc/tree"
	"tigerc/types"
)

// transExpr translates an expression, returning its translated form and its
// type.  The type rides along so that lvalue translation can resolve record
// field offsets; no checking happens here.
func (g *Generator) transExpr(expr ast.Expr) (TransExp, types.Type) {
	switch v := expr.(type) {
	case *ast.NilExpr:
		return Ex(&tree.Const{Value: 0}), types.PrimNil
	case *ast.IntExpr:
		return Ex(&tree.Const{Value: v.Value}), types.PrimInt
	case *ast.StringExpr:
		label := g.stringLiteral(v.Value)
		return Ex(&tree.Name{Label: label}), types.PrimString
	case *ast.VarExpr:
		exp, typ := g.transVar(v)
		return Ex(exp), typ
	case *ast.CallExpr:
		return g.transCall(v)
	case *ast.OpExpr:
		return g.transOp(v), types.PrimInt
	case *ast.RecordExpr:
		return g.transRecord(v)
	case *ast.ArrayExpr:
		return g.transArray(v)
	case *ast.AssignExpr:
		dst, _ := g.transVar(v.Var)
		val, _ := g.transExpr(v.Expr)
		return Nx(&tree.Move{Dst: dst, Src: val.UnEx(g.temps)}), types.PrimVoid
	case *ast.IfExpr:
		return g.transIf(v)
	case *ast.WhileExpr:
		return g.transWhile(v), types.PrimVoid
	case *ast.ForExpr:
		return g.transFor(v), types.PrimVoid
	case *ast.BreakExpr:
		return g.transBreak(), types.PrimVoid
	case *ast.LetExpr:
		return g.transLet(v)
	case *ast.SeqExpr:
		return g.transSeq(v.Exprs)
	default:
		return Ex(&tree.Const{Value: 0}), types.PrimInt
	}
}

// transVar translates an lvalue to the expression addressing it, usable both
// as a value and as a move destination.
func (g *Generator) transVar(v *ast.VarExpr) (tree.Exp, types.Type) {
	switch v.Kind {
	case ast.FieldVar:
		base, baseType := g.transVar(v.Var)

		// The field's slot is its declaration index, looked up on the
		// record type; the byte offset is computed here on each access.
		offset := 0
		fieldType := types.Type(types.PrimInt)
		if rt, ok := types.AsRecord(baseType); ok {
			if idx, ok := rt.FieldIndex(v.Name); ok {
				offset = idx * g.wordSize()
			}
			if ft, ok := rt.FieldType(v.Name); ok {
				fieldType = ft
			}
		}

		return &tree.Mem{Addr: &tree.Binop{
			Op:    tree.Plus,
			Left:  base,
			Right: &tree.Const{Value: offset},
		}}, fieldType
	case ast.SubscriptVar:
		base, baseType := g.transVar(v.Var)
		index, _ := g.transExpr(v.Index)

		elemType := types.Type(types.PrimInt)
		if at, ok := types.AsArray(baseType); ok {
			elemType = at.Elem
		}

		return &tree.Mem{Addr: &tree.Binop{
			Op:   tree.Plus,
			Left: base,
			Right: &tree.Binop{
				Op:    tree.Mul,
				Left:  index.UnEx(g.temps),
				Right: &tree.Const{Value: g.wordSize()},
			},
		}}, elemType
	default:
		entry, ok := g.lookupValue(v.Name)
		if !ok {
			// Semantic analysis should have rejected this; recover.
			return &tree.Const{Value: 0}, types.PrimInt
		}

		varEntry, ok := entry.(*varIREntry)
		if !ok {
			return &tree.Const{Value: 0}, types.PrimInt
		}

		return g.accessVar(varEntry), varEntry.typ
	}
}

// transCall translates a function call.  Calls to user functions carry the
// static link of the callee's parent as an implicit first argument;
// built-ins and the outermost level take none.
func (g *Generator) transCall(v *ast.CallExpr) (TransExp, types.Type) {
	entry, ok := g.lookupValue(v.Func)
	if !ok {
		return Ex(&tree.Const{Value: 0}), types.PrimInt
	}

	funcEntry, ok := entry.(*funcIREntry)
	if !ok {
		return Ex(&tree.Const{Value: 0}), types.PrimInt
	}

	var args []tree.Exp
	if funcEntry.level.Parent != nil {
		args = append(args, g.staticLink(g.current, funcEntry.level.Parent))
	}

	for _, arg := range v.Args {
		argExp, _ := g.transExpr(arg)
		args = append(args, argExp.UnEx(g.temps))
	}

	return Ex(&tree.Call{Func: &tree.Name{Label: funcEntry.label}, Args: args}), funcEntry.result
}

// relOps maps comparison AST operators to tree relational operators.
var relOps = map[int]tree.RelOp{
	ast.OpEq:  tree.Eq,
	ast.OpNeq: tree.Ne,
	ast.OpLt:  tree.Lt,
	ast.OpGt:  tree.Gt,
	ast.OpLe:  tree.Le,
	ast.OpGe:  tree.Ge,
}

// binOps maps arithmetic AST operators to tree binary operators.
var binOps = map[int]tree.BinOp{
	ast.OpPlus:   tree.Plus,
	ast.OpMinus:  tree.Minus,
	ast.OpTimes:  tree.Mul,
	ast.OpDivide: tree.Div,
}

// transOp translates a binary operator application.  Arithmetic lowers to
// Binop, comparisons to conditionals, and the logical operators to nested
// conditionals implementing short circuit.
func (g *Generator) transOp(v *ast.OpExpr) TransExp {
	left, _ := g.transExpr(v.Left)
	right, _ := g.transExpr(v.Right)

	switch v.Op {
	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDivide:
		return Ex(&tree.Binop{
			Op:    binOps[v.Op],
			Left:  left.UnEx(g.temps),
			Right: right.UnEx(g.temps),
		})
	case ast.OpAnd:
		// a & b: evaluate b only when a is true.
		middle := g.temps.NewLabel()
		return Cx(func(t, f temp.Label) tree.Stm {
			return tree.SeqOf(
				left.UnCx(middle, f, g.temps),
				&tree.LabelStm{Label: middle},
				right.UnCx(t, f, g.temps),
			)
		})
	case ast.OpOr:
		// a | b: evaluate b only when a is false.
		middle := g.temps.NewLabel()
		return Cx(func(t, f temp.Label) tree.Stm {
			return tree.SeqOf(
				left.UnCx(t, middle, g.temps),
				&tree.LabelStm{Label: middle},
				right.UnCx(t, f, g.temps),
			)
		})
	default:
		rel := relOps[v.Op]
		l := left.UnEx(g.temps)
		r := right.UnEx(g.temps)
		return Cx(func(t, f temp.Label) tree.Stm {
			return &tree.CJump{Op: rel, Left: l, Right: r, True: t, False: f}
		})
	}
}

// transRecord translates a record creation: allocate the record via the
// runtime, then initialize each field slot in source order.
func (g *Generator) transRecord(v *ast.RecordExpr) (TransExp, types.Type) {
	typ, ok := g.lookupType(v.TypeID)
	if !ok {
		typ = types.PrimInt
	}

	r := g.temps.NewTemp()

	stm := tree.Stm(&tree.Move{
		Dst: &tree.TempExp{Temp: r},
		Src: &tree.Call{
			Func: &tree.Name{Label: g.temps.NamedLabel("allocRecord")},
			Args: []tree.Exp{&tree.Const{Value: len(v.Fields) * g.wordSize()}},
		},
	})

	for i, field := range v.Fields {
		value, _ := g.transExpr(field.Value)
		stm = tree.SeqOf(stm, &tree.Move{
			Dst: &tree.Mem{Addr: &tree.Binop{
				Op:    tree.Plus,
				Left:  &tree.TempExp{Temp: r},
				Right: &tree.Const{Value: i * g.wordSize()},
			}},
			Src: value.UnEx(g.temps),
		})
	}

	return Ex(&tree.Eseq{Stm: stm, Exp: &tree.TempExp{Temp: r}}), typ
}

// transArray translates an array creation to the runtime initArray call.
func (g *Generator) transArray(v *ast.ArrayExpr) (TransExp, types.Type) {
	typ, ok := g.lookupType(v.TypeID)
	if !ok {
		typ = types.PrimInt
	}

	size, _ := g.transExpr(v.Size)
	init, _ := g.transExpr(v.Init)

	return Ex(&tree.Call{
		Func: &tree.Name{Label: g.temps.NamedLabel("initArray")},
		Args: []tree.Exp{size.UnEx(g.temps), init.UnEx(g.temps)},
	}), typ
}

// transIf translates a conditional.  Without an else it is pure control
// flow; with one, both arms move their value into a shared temp.
func (g *Generator) transIf(v *ast.IfExpr) (TransExp, types.Type) {
	test, _ := g.transExpr(v.Test)
	then, thenType := g.transExpr(v.Then)

	t := g.temps.NewLabel()
	f := g.temps.NewLabel()

	if v.Else == nil {
		return Nx(tree.SeqOf(
			test.UnCx(t, f, g.temps),
			&tree.LabelStm{Label: t},
			then.UnNx(g.temps),
			&tree.LabelStm{Label: f},
		)), types.PrimVoid
	}

	els, _ := g.transExpr(v.Else)

	join := g.temps.NewLabel()
	r := g.temps.NewTemp()

	return Ex(&tree.Eseq{
		Stm: tree.SeqOf(
			test.UnCx(t, f, g.temps),
			&tree.LabelStm{Label: t},
			&tree.Move{Dst: &tree.TempExp{Temp: r}, Src: then.UnEx(g.temps)},
			tree.JumpTo(join),
			&tree.LabelStm{Label: f},
			&tree.Move{Dst: &tree.TempExp{Temp: r}, Src: els.UnEx(g.temps)},
			tree.JumpTo(join),
			&tree.LabelStm{Label: join},
		),
		Exp: &tree.TempExp{Temp: r},
	}), thenType
}

// transWhile translates a while loop.  The done label doubles as the break
// target for the body.
func (g *Generator) transWhile(v *ast.WhileExpr) TransExp {
	test := g.temps.NewLabel()
	body := g.temps.NewLabel()
	done := g.temps.NewLabel()

	testExp, _ := g.transExpr(v.Test)

	g.breakLabels = append(g.breakLabels, done)
	bodyExp, _ := g.transExpr(v.Body)
	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]

	return Nx(tree.SeqOf(
		&tree.LabelStm{Label: test},
		testExp.UnCx(body, done, g.temps),
		&tree.LabelStm{Label: body},
		bodyExp.UnNx(g.temps),
		tree.JumpTo(test),
		&tree.LabelStm{Label: done},
	))
}

// transFor translates a for loop.  The limit test before the increment
// avoids computing hi+1, so a loop to the maximum integer terminates.
func (g *Generator) transFor(v *ast.ForExpr) TransExp {
	body := g.temps.NewLabel()
	incr := g.temps.NewLabel()
	done := g.temps.NewLabel()

	// The loop variable is a local of the current frame; its escape flag
	// was set by escape analysis.
	access := g.current.Frame().AllocLocal(v.Escape)
	entry := &varIREntry{level: g.current, access: access, typ: types.PrimInt}

	g.beginScope()
	g.defineValue(v.Var, entry)

	lo, _ := g.transExpr(v.Lo)
	hi, _ := g.transExpr(v.Hi)

	varAddr := g.accessVar(entry)
	limit := g.temps.NewTemp()

	g.breakLabels = append(g.breakLabels, done)
	bodyExp, _ := g.transExpr(v.Body)
	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]

	g.endScope()

	return Nx(tree.SeqOf(
		&tree.Move{Dst: varAddr, Src: lo.UnEx(g.temps)},
		&tree.Move{Dst: &tree.TempExp{Temp: limit}, Src: hi.UnEx(g.temps)},
		&tree.CJump{Op: tree.Le, Left: varAddr, Right: &tree.TempExp{Temp: limit}, True: body, False: done},
		&tree.LabelStm{Label: body},
		bodyExp.UnNx(g.temps),
		&tree.CJump{Op: tree.Lt, Left: varAddr, Right: &tree.TempExp{Temp: limit}, True: incr, False: done},
		&tree.LabelStm{Label: incr},
		&tree.Move{Dst: varAddr, Src: &tree.Binop{Op: tree.Plus, Left: varAddr, Right: &tree.Const{Value: 1}}},
		tree.JumpTo(body),
		&tree.LabelStm{Label: done},
	))
}

// transBreak translates a break.  Outside any loop there is no target; the
// semantic analyzer reports that case, so here it degrades to a no-op.
func (g *Generator) transBreak() TransExp {
	if len(g.breakLabels) == 0 {
		return Nx(&tree.ExpStm{Exp: &tree.Const{Value: 0}})
	}

	return Nx(tree.JumpTo(g.breakLabels[len(g.breakLabels)-1]))
}

// transLet translates a let expression: declarations fold into a statement
// prefix, then the body sequence supplies the value.
func (g *Generator) transLet(v *ast.LetExpr) (TransExp, types.Type) {
	g.beginScope()

	prefix := g.transDecls(v.Decls)

	var bodyStm tree.Stm
	last := TransExp(Ex(&tree.Const{Value: 0}))
	lastType := types.Type(types.PrimVoid)

	for i, e := range v.Body {
		exp, typ := g.transExpr(e)
		if i < len(v.Body)-1 {
			bodyStm = tree.SeqOf(bodyStm, exp.UnNx(g.temps))
		} else {
			last = exp
			lastType = typ
		}
	}

	g.endScope()

	all := tree.SeqOf(prefix, bodyStm)
	if all == nil {
		return last, lastType
	}

	if types.IsVoid(lastType) {
		return Nx(tree.SeqOf(all, last.UnNx(g.temps))), lastType
	}

	return Ex(&tree.Eseq{Stm: all, Exp: last.UnEx(g.temps)}), lastType
}

// transSeq translates an expression sequence: all but the last run for
// effect, the last supplies the value.
func (g *Generator) transSeq(exprs []ast.Expr) (TransExp, types.Type) {
	if len(exprs) == 0 {
		return Nx(&tree.ExpStm{Exp: &tree.Const{Value: 0}}), types.PrimVoid
	}

	var stm tree.Stm
	for _, e := range exprs[:len(exprs)-1] {
		exp, _ := g.transExpr(e)
		stm = tree.SeqOf(stm, exp.UnNx(g.temps))
	}

	last, lastType := g.transExpr(exprs[len(exprs)-1])
	if stm == nil {
		return last, lastType
	}

	if types.IsVoid(lastType) {
		return Nx(tree.SeqOf(stm, last.UnNx(g.temps))), lastType
	}

	return Ex(&tree.Eseq{Stm: stm, Exp: last.UnEx(g.temps)}), lastType
}
