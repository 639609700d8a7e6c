package translate

import (
	"tigerc/ast"
	"tigerc/tree"
	"tigerc/types"
)

// transDecls lowers the declarations of a let expression, folding the
// variable initializations into a single statement prefix.  Declarations are
// partitioned into the same maximal same-kind runs the semantic analyzer
// uses, so that mutually recursive functions resolve each other and sibling
// type names are visible during type translation.
func (g *Generator) transDecls(decls []ast.Decl) tree.Stm {
	var prefix tree.Stm

	i := 0
	for i < len(decls) {
		switch decls[i].(type) {
		case *ast.TypeDecl:
			var batch []*ast.TypeDecl
			for i < len(decls) {
				td, ok := decls[i].(*ast.TypeDecl)
				if !ok {
					break
				}
				batch = append(batch, td)
				i++
			}
			g.transTypeBatch(batch)
		case *ast.FuncDecl:
			var batch []*ast.FuncDecl
			for i < len(decls) {
				fd, ok := decls[i].(*ast.FuncDecl)
				if !ok {
					break
				}
				batch = append(batch, fd)
				i++
			}
			g.transFuncBatch(batch)
		case *ast.VarDecl:
			prefix = tree.SeqOf(prefix, g.transVarDecl(decls[i].(*ast.VarDecl)))
			i++
		}
	}

	return prefix
}

// transTypeBatch rebuilds the type environment for a batch of mutually
// recursive type declarations.  The program already type-checked, so no
// validation happens: aliases are published, then bound.
func (g *Generator) transTypeBatch(batch []*ast.TypeDecl) {
	aliases := make([]*types.NameType, len(batch))
	for i, td := range batch {
		aliases[i] = g.ctx.NewName(td.Name)
		g.defineType(td.Name, aliases[i])
	}

	for i, td := range batch {
		aliases[i].Bind(g.transTypeAST(td.Type))
	}
}

// transTypeAST rebuilds the semantic type denoted by a type AST.  Missing
// names resolve to int rather than failing.
func (g *Generator) transTypeAST(t ast.TypeAST) types.Type {
	switch v := t.(type) {
	case *ast.NameTypeAST:
		if typ, ok := g.lookupType(v.Name); ok {
			return typ
		}
		return types.PrimInt
	case *ast.RecordTypeAST:
		fields := make([]types.Field, len(v.Fields))
		for i, field := range v.Fields {
			fieldType, ok := g.lookupType(field.TypeID)
			if !ok {
				fieldType = types.PrimInt
			}
			fields[i] = types.Field{Name: field.Name, Type: fieldType}
		}
		return g.ctx.NewRecord(fields)
	case *ast.ArrayTypeAST:
		elem, ok := g.lookupType(v.ElemID)
		if !ok {
			elem = types.PrimInt
		}
		return g.ctx.NewArray(elem)
	default:
		return types.PrimInt
	}
}

// transVarDecl allocates a local for the variable and returns the statement
// initializing it.  The escape flag set by escape analysis decides whether
// the local gets a stack slot or a register.
func (g *Generator) transVarDecl(vd *ast.VarDecl) tree.Stm {
	init, initType := g.transExpr(vd.Init)

	varType := initType
	if vd.TypeID != "" {
		if declared, ok := g.lookupType(vd.TypeID); ok {
			varType = declared
		}
	}

	access := g.current.Frame().AllocLocal(vd.Escape)
	entry := &varIREntry{level: g.current, access: access, typ: varType}
	g.defineValue(vd.Name, entry)

	return &tree.Move{Dst: g.accessVar(entry), Src: init.UnEx(g.temps)}
}

// transFuncBatch lowers a batch of mutually recursive function declarations:
// first every function gets its level and label and is registered, then each
// body is translated in its own level and emitted as a procedure fragment.
func (g *Generator) transFuncBatch(batch []*ast.FuncDecl) {
	entries := make([]*funcIREntry, len(batch))
	for i, fd := range batch {
		label := g.uniqueLabel(fd.Name)

		formals := make([]bool, len(fd.Params))
		for j, param := range fd.Params {
			formals[j] = param.Escape
		}

		level := NewLevel(g.current, label, formals, g.frames)

		result := types.Type(types.PrimVoid)
		if fd.ResultID != "" {
			if declared, ok := g.lookupType(fd.ResultID); ok {
				result = declared
			}
		}

		entries[i] = &funcIREntry{level: level, label: label, result: result}
		g.defineValue(fd.Name, entries[i])
	}

	for i, fd := range batch {
		g.transFuncBody(fd, entries[i])
	}
}

// transFuncBody translates one function body inside its own level and emits
// its procedure fragment.  Function results move into the frame's return
// value temp; procedures discard their body's value.
func (g *Generator) transFuncBody(fd *ast.FuncDecl, entry *funcIREntry) {
	saved := g.current
	g.current = entry.level

	g.beginScope()

	// Bind parameters to the frame's formals, skipping the static link at
	// index 0.
	formals := entry.level.Formals()
	for i, param := range fd.Params {
		paramType := types.Type(types.PrimInt)
		if declared, ok := g.lookupType(param.TypeID); ok {
			paramType = declared
		}

		g.defineValue(param.Name, &varIREntry{
			level:  entry.level,
			access: formals[i],
			typ:    paramType,
		})
	}

	body, _ := g.transExpr(fd.Body)

	var bodyStm tree.Stm
	if fd.ResultID == "" {
		bodyStm = body.UnNx(g.temps)
	} else {
		bodyStm = &tree.Move{
			Dst: &tree.TempExp{Temp: entry.level.Frame().ReturnValue()},
			Src: body.UnEx(g.temps),
		}
	}

	g.endScope()

	g.frags = append(g.frags, &ProcFragment{
		Body:  g.procEntryExit(bodyStm),
		Frame: entry.level.Frame(),
	})

	g.current = saved
}
