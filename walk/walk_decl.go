package walk

import (
	"strings"

	"tigerc/ast"
	"tigerc/types"
)

// walkDecls processes the declarations of a let expression.  Declarations
// are partitioned into maximal consecutive runs of the same kind: a run of
// type declarations or of function declarations forms one mutually recursive
// batch, while a var declaration is processed alone and closes any open
// batch.  This is why Tiger forbids interleaving a var between two mutually
// recursive functions.
func (w *Walker) walkDecls(decls []ast.Decl) {
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
			w.walkTypeBatch(batch)
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
			w.walkFuncBatch(batch)
		case *ast.VarDecl:
			w.walkVarDecl(decls[i].(*ast.VarDecl))
			i++
		}
	}
}

// walkTypeBatch processes one mutually recursive batch of type declarations
// in three phases: publish unbound aliases for every name, translate and
// bind every definition, then reject alias cycles.
func (w *Walker) walkTypeBatch(batch []*ast.TypeDecl) {
	// Phase 1: enter an unbound alias for each name so that every name in
	// the batch is visible to every definition.  Duplicate names within one
	// batch are errors; shadowing an outer declaration is not.
	seen := make(map[string]bool)
	aliases := make([]*types.NameType, len(batch))
	for i, td := range batch {
		if seen[td.Name] {
			w.error(td.Span(), "duplicate type name `%s` in recursive declaration batch", td.Name)
		}
		seen[td.Name] = true

		aliases[i] = w.ctx.NewName(td.Name)
		w.defineType(td.Name, aliases[i])
	}

	// Phase 2: translate each right-hand side (which may now reference
	// sibling names) and bind the alias to it.
	for i, td := range batch {
		aliases[i].Bind(w.translateTypeAST(td.Type))
	}

	// Phase 3: reject cycles that never pass through a record or array.
	for i := range batch {
		w.checkAliasCycle(batch[i], aliases[i])
	}
}

// checkAliasCycle walks an alias's binding chain.  A chain that revisits a
// name before reaching a non-alias type is an unproductive cycle, as in
// `type a = b  type b = a`.  Recursion through a record or array stops the
// walk and is legal.
func (w *Walker) checkAliasCycle(td *ast.TypeDecl, alias *types.NameType) {
	visited := map[string]bool{alias.Name: true}
	var path []string

	current := alias
	for {
		next, ok := current.Binding().(*types.NameType)
		if !ok {
			return
		}

		path = append(path, next.Name)
		if visited[next.Name] {
			w.error(td.Span(), "cycle in type declaration `%s`: %s",
				td.Name, strings.Join(append([]string{td.Name}, path...), " -> "))
		}

		visited[next.Name] = true
		current = next
	}
}

// translateTypeAST computes the semantic type denoted by a type AST.
func (w *Walker) translateTypeAST(t ast.TypeAST) types.Type {
	switch v := t.(type) {
	case *ast.NameTypeAST:
		typ, ok := w.lookupType(v.Name)
		if !ok {
			w.error(v.Span(), "undefined type: `%s`", v.Name)
		}
		return typ
	case *ast.RecordTypeAST:
		fields := make([]types.Field, len(v.Fields))
		for i, field := range v.Fields {
			fieldType, ok := w.lookupType(field.TypeID)
			if !ok {
				w.error(v.Span(), "undefined field type in record: `%s`", field.TypeID)
			}
			fields[i] = types.Field{Name: field.Name, Type: fieldType}
		}
		return w.ctx.NewRecord(fields)
	case *ast.ArrayTypeAST:
		elem, ok := w.lookupType(v.ElemID)
		if !ok {
			w.error(v.Span(), "undefined array element type: `%s`", v.ElemID)
		}
		return w.ctx.NewArray(elem)
	default:
		w.error(t.Span(), "unsupported type form")
		return nil
	}
}

// walkFuncBatch processes one mutually recursive batch of function
// declarations in two phases: publish every header, then check every body.
func (w *Walker) walkFuncBatch(batch []*ast.FuncDecl) {
	// Phase 1: translate signatures and enter all headers so that bodies
	// can call any function in the batch.
	seen := make(map[string]bool)
	for _, fd := range batch {
		if seen[fd.Name] {
			w.error(fd.Span(), "duplicate function name `%s` in recursive declaration batch", fd.Name)
		}
		seen[fd.Name] = true

		params := make([]types.Type, len(fd.Params))
		for i, param := range fd.Params {
			paramType, ok := w.lookupType(param.TypeID)
			if !ok {
				w.error(fd.Span(), "undefined parameter type: `%s`", param.TypeID)
			}
			params[i] = paramType
		}

		result := types.Type(types.PrimVoid)
		if fd.ResultID != "" {
			resultType, ok := w.lookupType(fd.ResultID)
			if !ok {
				w.error(fd.Span(), "undefined result type: `%s`", fd.ResultID)
			}
			result = resultType
		}

		w.defineValue(fd.Name, &FuncEntry{Params: params, Result: result})
	}

	// Phase 2: check each body against its header.
	for _, fd := range batch {
		entry, _ := w.lookupValue(fd.Name)
		funcEntry := entry.(*FuncEntry)

		w.pushScope()

		savedReturn := w.returnType
		w.returnType = funcEntry.Result

		// Parameters are ordinary writable variables inside the body.
		for i, param := range fd.Params {
			w.defineValue(param.Name, &VarEntry{Type: funcEntry.Params[i]})
		}

		bodyType := w.walkExpr(fd.Body)

		// A void result accepts any body and discards its value; a non-void
		// result requires the body to produce it.
		if !types.IsVoid(funcEntry.Result) && !types.Equals(funcEntry.Result, bodyType) {
			w.error(fd.Span(), "function `%s` body has type %s, expected %s",
				fd.Name, bodyType.Repr(), funcEntry.Result.Repr())
		}

		w.returnType = savedReturn
		w.popScope()
	}
}

// walkVarDecl processes a variable declaration.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) {
	initType := w.walkExpr(vd.Init)

	varType := initType
	if vd.TypeID != "" {
		declared, ok := w.lookupType(vd.TypeID)
		if !ok {
			w.error(vd.Span(), "undefined type in variable declaration: `%s`", vd.TypeID)
		}

		w.mustAssignable(declared, initType, "declaration of `"+vd.Name+"`", vd.Init.Span())
		varType = declared
	} else if types.IsNil(initType) {
		// nil must be constrained by a record type annotation.
		w.error(vd.Span(), "nil initializer for `%s` requires a record type annotation", vd.Name)
	}

	w.defineValue(vd.Name, &VarEntry{Type: varType})
}
