package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerc/ast"
	"tigerc/syntax"
)

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()

	expr, err := syntax.NewParser(src).Parse()
	require.NoError(t, err)
	return expr
}

func findVarDecl(t *testing.T, let *ast.LetExpr, name string) *ast.VarDecl {
	t.Helper()

	for _, decl := range let.Decls {
		if vd, ok := decl.(*ast.VarDecl); ok && vd.Name == name {
			return vd
		}
	}

	t.Fatalf("no var decl named %s", name)
	return nil
}

func findFuncDecl(t *testing.T, let *ast.LetExpr, name string) *ast.FuncDecl {
	t.Helper()

	for _, decl := range let.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Name == name {
			return fd
		}
	}

	t.Fatalf("no function decl named %s", name)
	return nil
}

func TestSimpleVarDoesNotEscape(t *testing.T) {
	program := parse(t, "let var x := 5 in x end")
	Analyze(program)

	let := program.(*ast.LetExpr)
	assert.False(t, findVarDecl(t, let, "x").Escape)
}

func TestVarUsedInNestedFunctionEscapes(t *testing.T) {
	program := parse(t, "let var x := 0 function f(): int = x in f() end")
	Analyze(program)

	let := program.(*ast.LetExpr)
	assert.True(t, findVarDecl(t, let, "x").Escape)
}

func TestParamUsedInNestedFunctionEscapes(t *testing.T) {
	program := parse(t, `
let
  function outer(a: int, b: int): int =
    let
      function inner(): int = a
    in
      inner() + b
    end
in
  outer(1, 2)
end`)
	Analyze(program)

	let := program.(*ast.LetExpr)
	outer := findFuncDecl(t, let, "outer")

	assert.True(t, outer.Params[0].Escape, "a is captured by inner")
	assert.False(t, outer.Params[1].Escape, "b is only used at its own depth")
}

func TestForVariableEscape(t *testing.T) {
	program := parse(t, `
let
  function f() =
    for i := 1 to 10 do
      let function g(): int = i in g(); () end
in
  f()
end`)
	Analyze(program)

	let := program.(*ast.LetExpr)
	f := findFuncDecl(t, let, "f")

	forExpr, ok := f.Body.(*ast.ForExpr)
	require.True(t, ok)
	assert.True(t, forExpr.Escape)
}

func TestLoopsDoNotChangeDepth(t *testing.T) {
	program := parse(t, "let var x := 0 in while x < 10 do x := x + 1 end")
	Analyze(program)

	let := program.(*ast.LetExpr)
	assert.False(t, findVarDecl(t, let, "x").Escape)
}

func TestShadowingInnerBindingWins(t *testing.T) {
	// The inner function declares its own x; the outer x is not captured.
	program := parse(t, `
let
  var x := 0
  function f(): int = let var x := 1 in x end
in
  f()
end`)
	Analyze(program)

	let := program.(*ast.LetExpr)
	assert.False(t, findVarDecl(t, let, "x").Escape)
}

func TestInitializerAnalyzedInOuterScope(t *testing.T) {
	// The x in g's inner declaration initializer refers to the captured
	// outer x, not to the variable being declared.
	program := parse(t, `
let
  var x := 0
  function g(): int = let var x := x + 1 in x end
in
  g()
end`)
	Analyze(program)

	let := program.(*ast.LetExpr)
	assert.True(t, findVarDecl(t, let, "x").Escape)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	src := `
let
  var a := 0
  var b := 0
  function f(): int = a
in
  f() + b
end`

	first := parse(t, src)
	Analyze(first)

	second := parse(t, src)
	Analyze(second)
	Analyze(second)

	firstLet := first.(*ast.LetExpr)
	secondLet := second.(*ast.LetExpr)

	assert.Equal(t, findVarDecl(t, firstLet, "a").Escape, findVarDecl(t, secondLet, "a").Escape)
	assert.Equal(t, findVarDecl(t, firstLet, "b").Escape, findVarDecl(t, secondLet, "b").Escape)
	assert.True(t, findVarDecl(t, secondLet, "a").Escape)
	assert.False(t, findVarDecl(t, secondLet, "b").Escape)
}
