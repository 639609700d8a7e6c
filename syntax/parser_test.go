package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerc/ast"
	"tigerc/report"
)

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()

	expr, err := NewParser(src).Parse()
	require.NoError(t, err)
	return expr
}

func TestParseLetVar(t *testing.T) {
	let, ok := parse(t, "let var x := 5 in x end").(*ast.LetExpr)
	require.True(t, ok)

	require.Len(t, let.Decls, 1)
	vd, ok := let.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", vd.Name)
	assert.Empty(t, vd.TypeID)
	assert.False(t, vd.Escape)

	init, ok := vd.Init.(*ast.IntExpr)
	require.True(t, ok)
	assert.Equal(t, 5, init.Value)

	require.Len(t, let.Body, 1)
	v, ok := let.Body[0].(*ast.VarExpr)
	require.True(t, ok)
	assert.Equal(t, ast.SimpleVar, v.Kind)
	assert.Equal(t, "x", v.Name)
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3).
	op, ok := parse(t, "1 + 2 * 3").(*ast.OpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, op.Op)

	right, ok := op.Right.(*ast.OpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpTimes, right.Op)
}

func TestParseUnaryMinusDesugars(t *testing.T) {
	// -x is sugar for 0 - x.
	op, ok := parse(t, "-x").(*ast.OpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMinus, op.Op)

	zero, ok := op.Left.(*ast.IntExpr)
	require.True(t, ok)
	assert.Equal(t, 0, zero.Value)
}

func TestParseLogicalPrecedence(t *testing.T) {
	// a | b & c parses as a | (b & c).
	op, ok := parse(t, "a | b & c").(*ast.OpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, op.Op)

	right, ok := op.Right.(*ast.OpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, right.Op)
}

func TestParseArrayCreationVsSubscript(t *testing.T) {
	arr, ok := parse(t, "intArr[10] of 0").(*ast.ArrayExpr)
	require.True(t, ok)
	assert.Equal(t, "intArr", arr.TypeID)

	sub, ok := parse(t, "a[10]").(*ast.VarExpr)
	require.True(t, ok)
	assert.Equal(t, ast.SubscriptVar, sub.Kind)
	require.NotNil(t, sub.Var)
	assert.Equal(t, ast.SimpleVar, sub.Var.Kind)
	assert.Equal(t, "a", sub.Var.Name)
}

func TestParseLvalueChain(t *testing.T) {
	// a.b[c].d
	lv, ok := parse(t, "a.b[c].d").(*ast.VarExpr)
	require.True(t, ok)
	assert.Equal(t, ast.FieldVar, lv.Kind)
	assert.Equal(t, "d", lv.Name)

	sub := lv.Var
	require.Equal(t, ast.SubscriptVar, sub.Kind)

	field := sub.Var
	require.Equal(t, ast.FieldVar, field.Kind)
	assert.Equal(t, "b", field.Name)
}

func TestParseAssignment(t *testing.T) {
	as, ok := parse(t, "a.f := 3").(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, ast.FieldVar, as.Var.Kind)
}

func TestParseRecordCreation(t *testing.T) {
	rec, ok := parse(t, "point{x=1, y=2}").(*ast.RecordExpr)
	require.True(t, ok)
	assert.Equal(t, "point", rec.TypeID)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "x", rec.Fields[0].Name)
	assert.Equal(t, "y", rec.Fields[1].Name)
}

func TestParseIfWhileFor(t *testing.T) {
	ifExpr, ok := parse(t, "if a then b else c").(*ast.IfExpr)
	require.True(t, ok)
	assert.NotNil(t, ifExpr.Else)

	ifNoElse, ok := parse(t, "if a then b").(*ast.IfExpr)
	require.True(t, ok)
	assert.Nil(t, ifNoElse.Else)

	while, ok := parse(t, "while a do b").(*ast.WhileExpr)
	require.True(t, ok)
	assert.NotNil(t, while.Body)

	forExpr, ok := parse(t, "for i := 1 to 10 do print(\"x\")").(*ast.ForExpr)
	require.True(t, ok)
	assert.Equal(t, "i", forExpr.Var)
	assert.False(t, forExpr.Escape)
}

func TestParseFunctionDecls(t *testing.T) {
	let, ok := parse(t, "let function f(a: int, b: string): int = 1 function g() = () in f(1, \"s\") end").(*ast.LetExpr)
	require.True(t, ok)
	require.Len(t, let.Decls, 2)

	f, ok := let.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "f", f.Name)
	require.Len(t, f.Params, 2)
	assert.Equal(t, "int", f.Params[0].TypeID)
	assert.Equal(t, "int", f.ResultID)

	g, ok := let.Decls[1].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Empty(t, g.ResultID)
	assert.Empty(t, g.Params)
}

func TestParseTypeDecls(t *testing.T) {
	let, ok := parse(t, "let type a = int type r = {x: int} type arr = array of int in 0 end").(*ast.LetExpr)
	require.True(t, ok)
	require.Len(t, let.Decls, 3)

	name := let.Decls[0].(*ast.TypeDecl)
	_, ok = name.Type.(*ast.NameTypeAST)
	assert.True(t, ok)

	rec := let.Decls[1].(*ast.TypeDecl)
	recAST, ok := rec.Type.(*ast.RecordTypeAST)
	require.True(t, ok)
	require.Len(t, recAST.Fields, 1)
	assert.Equal(t, "x", recAST.Fields[0].Name)

	arr := let.Decls[2].(*ast.TypeDecl)
	arrAST, ok := arr.Type.(*ast.ArrayTypeAST)
	require.True(t, ok)
	assert.Equal(t, "int", arrAST.ElemID)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := NewParser("let var := 5 in x end").Parse()
	require.Error(t, err)

	var synErr *report.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, "Syntax error", synErr.Error())
}

func TestParseTrailingTokensRejected(t *testing.T) {
	_, err := NewParser("1 2").Parse()
	require.Error(t, err)
}
