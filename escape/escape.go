// Package escape decides, for every binding in a Tiger program, whether its
// activation-record slot must live in memory.  A variable escapes when it is
// referenced from a function nested more deeply than its declaration: such
// references reach it through the static-link chain, so it needs a stack
// home.
//
// The analyzer only ever sets escape flags; it never clears one.  Running it
// twice over the same tree is therefore idempotent.  It must run before IR
// generation, which reads the flags when allocating locals and formals.
package escape

import "tigerc/ast"

// binding records where a variable was declared and where its escape flag
// lives.
type binding struct {
	depth int
	flag  *bool
}

// analyzer tracks the current function-nesting depth and a stack of scoped
// environments mapping names to bindings.
type analyzer struct {
	depth  int
	scopes []map[string]binding
}

// Analyze walks the program and sets the escape flags of captured bindings.
func Analyze(expr ast.Expr) {
	a := &analyzer{}

	a.pushScope()
	a.walkExpr(expr)
	a.popScope()
}

// -----------------------------------------------------------------------------

func (a *analyzer) pushScope() {
	a.scopes = append(a.scopes, make(map[string]binding))
}

func (a *analyzer) popScope() {
	a.scopes = a.scopes[:len(a.scopes)-1]
}

// bind declares a name at the current depth with a pointer to its escape
// flag.
func (a *analyzer) bind(name string, flag *bool) {
	a.scopes[len(a.scopes)-1][name] = binding{depth: a.depth, flag: flag}
}

// use looks up the innermost binding for a name and marks it as escaping
// when the use is deeper than the declaration.
func (a *analyzer) use(name string) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if b, ok := a.scopes[i][name]; ok {
			if a.depth > b.depth {
				*b.flag = true
			}

			return
		}
	}
}

// -----------------------------------------------------------------------------

func (a *analyzer) walkExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.VarExpr:
		a.walkVar(v)
	case *ast.CallExpr:
		for _, arg := range v.Args {
			a.walkExpr(arg)
		}
	case *ast.OpExpr:
		a.walkExpr(v.Left)
		a.walkExpr(v.Right)
	case *ast.RecordExpr:
		for _, field := range v.Fields {
			a.walkExpr(field.Value)
		}
	case *ast.ArrayExpr:
		a.walkExpr(v.Size)
		a.walkExpr(v.Init)
	case *ast.AssignExpr:
		a.walkVar(v.Var)
		a.walkExpr(v.Expr)
	case *ast.IfExpr:
		a.walkExpr(v.Test)
		a.walkExpr(v.Then)
		if v.Else != nil {
			a.walkExpr(v.Else)
		}
	case *ast.WhileExpr:
		// Loops do not change the function-nesting depth.
		a.walkExpr(v.Test)
		a.walkExpr(v.Body)
	case *ast.ForExpr:
		a.pushScope()
		a.bind(v.Var, &v.Escape)
		a.walkExpr(v.Lo)
		a.walkExpr(v.Hi)
		a.walkExpr(v.Body)
		a.popScope()
	case *ast.LetExpr:
		a.pushScope()
		for _, decl := range v.Decls {
			a.walkDecl(decl)
		}
		for _, e := range v.Body {
			a.walkExpr(e)
		}
		a.popScope()
	case *ast.SeqExpr:
		for _, e := range v.Exprs {
			a.walkExpr(e)
		}
	}
	// NilExpr, IntExpr, StringExpr, and BreakExpr bind and use nothing.
}

// walkVar walks an lvalue.  Only the simple-variable form marks a use; field
// and subscript accesses recurse into their base.
func (a *analyzer) walkVar(v *ast.VarExpr) {
	switch v.Kind {
	case ast.SimpleVar:
		a.use(v.Name)
	case ast.FieldVar:
		a.walkVar(v.Var)
	case ast.SubscriptVar:
		a.walkVar(v.Var)
		a.walkExpr(v.Index)
	}
}

func (a *analyzer) walkDecl(decl ast.Decl) {
	switch v := decl.(type) {
	case *ast.VarDecl:
		// The initializer runs in the outer scope: a reference to a
		// same-named outer variable inside it must resolve there.
		a.walkExpr(v.Init)
		a.bind(v.Name, &v.Escape)
	case *ast.FuncDecl:
		a.depth++
		a.pushScope()
		for _, param := range v.Params {
			a.bind(param.Name, &param.Escape)
		}
		a.walkExpr(v.Body)
		a.popScope()
		a.depth--
	}
	// Type declarations bind no variables.
}
