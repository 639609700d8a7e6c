package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerc/escape"
	"tigerc/frame"
	"tigerc/syntax"
	"tigerc/temp"
	"tigerc/tree"
	"tigerc/types"
	"tigerc/walk"
)

// lower runs the full front-end pipeline over source and returns the emitted
// fragments, using the x86-64 frame layout.
func lower(t *testing.T, src string) []Fragment {
	t.Helper()

	program, err := syntax.NewParser(src).Parse()
	require.NoError(t, err)

	escape.Analyze(program)

	ctx := types.NewContext()
	_, err = walk.NewWalker(ctx).Walk(program)
	require.NoError(t, err)

	temps := temp.NewFactory()
	gen := NewGenerator(&frame.X64Factory{Temps: temps}, temps, ctx)
	return gen.Generate(program)
}

// procFragments filters the procedure fragments in emission order.
func procFragments(frags []Fragment) []*ProcFragment {
	var procs []*ProcFragment
	for _, frag := range frags {
		if proc, ok := frag.(*ProcFragment); ok {
			procs = append(procs, proc)
		}
	}
	return procs
}

func mainFragment(t *testing.T, frags []Fragment) *ProcFragment {
	t.Helper()

	procs := procFragments(frags)
	require.NotEmpty(t, procs)

	last := procs[len(procs)-1]
	require.Equal(t, "_main", last.Frame.Name().Name())
	return last
}

func TestSimpleLetProducesMainFragment(t *testing.T) {
	frags := lower(t, "let var x := 5 in x end")

	require.Len(t, frags, 1)
	main := mainFragment(t, frags)

	// A non-escaping local initializes a register temp with the constant.
	out := tree.StmString(main.Body)
	assert.Contains(t, out, "MOVE(")
	assert.Contains(t, out, "CONST(5)")
	assert.NotContains(t, out, "MEM", "x does not escape, so no memory access is needed")
}

func TestStringLiteralEmitsFragment(t *testing.T) {
	frags := lower(t, `print("hello")`)

	var str *StringFragment
	for _, frag := range frags {
		if s, ok := frag.(*StringFragment); ok {
			str = s
		}
	}

	require.NotNil(t, str)
	assert.Equal(t, "hello", str.Value)

	// The call references the fragment's label by name.
	main := mainFragment(t, frags)
	assert.Contains(t, tree.StmString(main.Body), "NAME("+str.Label.Name()+")")
}

func TestArrayCreationCallsInitArray(t *testing.T) {
	frags := lower(t, "let type intArr = array of int var a := intArr[10] of 0 in a[0] end")

	main := mainFragment(t, frags)
	assert.Contains(t, tree.StmString(main.Body), "CALL(NAME(initArray), CONST(10), CONST(0))")
}

func TestRecordCreationAllocatesAndInitializes(t *testing.T) {
	frags := lower(t, `
let
  type point = {x: int, y: int}
  var p := point{x = 1, y = 2}
in
  p.y
end`)

	main := mainFragment(t, frags)
	out := tree.StmString(main.Body)

	// Two fields on an 8-byte word target allocate 16 bytes.
	assert.Contains(t, out, "CALL(NAME(allocRecord), CONST(16))")

	// Field y sits one word into the record, both at initialization and at
	// the later access.
	assert.Contains(t, out, "CONST(8)")
}

func TestFieldOffsetsComeFromDeclarationOrder(t *testing.T) {
	frags := lower(t, `
let
  type r = {a: int, b: int, c: int}
  var v := r{a = 0, b = 0, c = 0}
in
  v.c
end`)

	main := mainFragment(t, frags)

	// c is field index 2: offset 16 on x86-64.
	assert.Contains(t, tree.StmString(main.Body), "CONST(16)")
}

func TestNestedFunctionGetsStaticLink(t *testing.T) {
	frags := lower(t, "let var x := 0 function f(): int = x in f() end")

	procs := procFragments(frags)
	require.Len(t, procs, 2)

	// The function's fragment is emitted before _main's.
	fFrag := procs[0]
	assert.Equal(t, "f", fFrag.Frame.Name().Name())

	// Invariant: frame formals are the static link plus the declared
	// parameters.
	assert.Len(t, fFrag.Frame.Formals(), 1)

	// x escaped, so f reads it through the static link: a memory access
	// off the dereferenced link.
	out := tree.StmString(fFrag.Body)
	assert.Contains(t, out, "MEM(BINOP(PLUS, MEM(BINOP(PLUS, TEMP(")

	// The call in _main passes the caller's frame pointer as the link.
	main := mainFragment(t, frags)
	fp := main.Frame.FramePointer()
	assert.Contains(t, tree.StmString(main.Body), "CALL(NAME(f), TEMP("+fp.String()+"))")
}

func TestBuiltinCallsCarryNoStaticLink(t *testing.T) {
	frags := lower(t, "printi(7)")

	main := mainFragment(t, frags)
	assert.Contains(t, tree.StmString(main.Body), "CALL(NAME(printi), CONST(7))")
}

func TestFunctionFormalsMatchParams(t *testing.T) {
	frags := lower(t, `
let
  function add(a: int, b: int): int = a + b
in
  add(1, 2)
end`)

	procs := procFragments(frags)
	require.Len(t, procs, 2)

	add := procs[0]
	assert.Len(t, add.Frame.Formals(), 3, "static link + two params")

	// The function moves its result into the return value temp.
	rv := add.Frame.ReturnValue()
	assert.Contains(t, tree.StmString(add.Body), "MOVE(\n  TEMP("+rv.String()+"),")
}

func TestMutuallyRecursiveFunctionsResolve(t *testing.T) {
	frags := lower(t, `
let
  function isEven(n: int): int = if n = 0 then 1 else isOdd(n - 1)
  function isOdd(n: int): int = if n = 0 then 0 else isEven(n - 1)
in
  isEven(4)
end`)

	procs := procFragments(frags)
	require.Len(t, procs, 3)

	// isEven's body calls isOdd by label, not a recovery constant.
	assert.Contains(t, tree.StmString(procs[0].Body), "NAME(isOdd)")
	assert.Contains(t, tree.StmString(procs[1].Body), "NAME(isEven)")
}

func TestWhileLoopShape(t *testing.T) {
	frags := lower(t, "let var i := 0 in while i < 10 do i := i + 1 end")

	main := mainFragment(t, frags)
	out := tree.StmString(main.Body)

	assert.Contains(t, out, "CJUMP(LT,")
	assertLabelsWellFormed(t, main.Body)
}

func TestForLoopAvoidsOverflow(t *testing.T) {
	frags := lower(t, "for i := 1 to 10 do flush()")

	main := mainFragment(t, frags)
	out := tree.StmString(main.Body)

	// Entry guard, then the pre-increment limit test.
	assert.Contains(t, out, "CJUMP(LE,")
	assert.Contains(t, out, "CJUMP(LT,")
	assertLabelsWellFormed(t, main.Body)
}

func TestBreakJumpsToLoopDone(t *testing.T) {
	frags := lower(t, "while 1 do break")

	main := mainFragment(t, frags)
	assertLabelsWellFormed(t, main.Body)
}

func TestIfElseProducesValue(t *testing.T) {
	frags := lower(t, "let var x := if 1 then 2 else 3 in x end")

	main := mainFragment(t, frags)
	out := tree.StmString(main.Body)

	assert.Contains(t, out, "CJUMP(NE,")
	assert.Contains(t, out, "CONST(2)")
	assert.Contains(t, out, "CONST(3)")
	assertLabelsWellFormed(t, main.Body)
}

func TestShortCircuitAnd(t *testing.T) {
	frags := lower(t, "let var x := if 1 & 0 then 1 else 2 in x end")

	main := mainFragment(t, frags)
	assertLabelsWellFormed(t, main.Body)
}

func TestShortCircuitOr(t *testing.T) {
	frags := lower(t, "let var x := if 0 | 1 then 1 else 2 in x end")

	main := mainFragment(t, frags)
	assertLabelsWellFormed(t, main.Body)
}

func TestComparisonAsValue(t *testing.T) {
	frags := lower(t, "let var x := 1 < 2 in x end")

	main := mainFragment(t, frags)
	out := tree.StmString(main.Body)

	// The Cx materializes through the 1/0 temp pattern.
	assert.Contains(t, out, "CJUMP(LT,")
	assert.Contains(t, out, "CONST(1)")
	assert.Contains(t, out, "CONST(0)")
	assertLabelsWellFormed(t, main.Body)
}

func TestEscapingLocalLivesInFrame(t *testing.T) {
	frags := lower(t, "let var x := 0 function f(): int = x in f() end")

	main := mainFragment(t, frags)

	// x's initialization targets a frame slot.  The let yields a value, so
	// the MOVE prints nested inside _main's EXP(ESEQ(...)).
	assert.Regexp(t, `MOVE\(\n\s*MEM\(`, tree.StmString(main.Body))
}

func TestSameNamedNestedFunctionsGetDistinctLabels(t *testing.T) {
	frags := lower(t, `
let
  function f(): int = 1
  var a := f()
  function f(): int = 2
in
  f() + a
end`)

	procs := procFragments(frags)
	require.Len(t, procs, 3)

	assert.NotEqual(t, procs[0].Frame.Name(), procs[1].Frame.Name())
}

func TestFragmentEmissionOrder(t *testing.T) {
	frags := lower(t, `
let
  function f(): string = "inner"
in
  print(f())
end`)

	// The string fragment is emitted while translating f's body, before
	// f's own fragment, with _main last.
	require.Len(t, frags, 3)

	_, ok := frags[0].(*StringFragment)
	assert.True(t, ok)

	fFrag, ok := frags[1].(*ProcFragment)
	require.True(t, ok)
	assert.Equal(t, "f", fFrag.Frame.Name().Name())

	mainFrag, ok := frags[2].(*ProcFragment)
	require.True(t, ok)
	assert.Equal(t, "_main", mainFrag.Frame.Name().Name())
}

func TestMipsTargetUsesFourByteWords(t *testing.T) {
	program, err := syntax.NewParser(`
let
  type point = {x: int, y: int}
  var p := point{x = 1, y = 2}
in
  p.y
end`).Parse()
	require.NoError(t, err)

	escape.Analyze(program)

	ctx := types.NewContext()
	_, err = walk.NewWalker(ctx).Walk(program)
	require.NoError(t, err)

	temps := temp.NewFactory()
	gen := NewGenerator(&frame.MipsFactory{Temps: temps}, temps, ctx)
	frags := gen.Generate(program)

	main := mainFragment(t, frags)
	out := tree.StmString(main.Body)

	assert.Contains(t, out, "CALL(NAME(allocRecord), CONST(8))")
	assert.Contains(t, out, "CONST(4)")
}

// -----------------------------------------------------------------------------

// assertLabelsWellFormed checks that every label targeted by a jump within
// the fragment is defined exactly once by a LabelStm.
func assertLabelsWellFormed(t *testing.T, body tree.Stm) {
	t.Helper()

	defined := make(map[string]int)
	targets := make(map[string]bool)

	var walkStm func(tree.Stm)
	var walkExp func(tree.Exp)

	walkStm = func(stm tree.Stm) {
		switch s := stm.(type) {
		case *tree.Move:
			walkExp(s.Dst)
			walkExp(s.Src)
		case *tree.ExpStm:
			walkExp(s.Exp)
		case *tree.Jump:
			for _, l := range s.Labels {
				targets[l.Name()] = true
			}
			walkExp(s.Target)
		case *tree.CJump:
			targets[s.True.Name()] = true
			targets[s.False.Name()] = true
			walkExp(s.Left)
			walkExp(s.Right)
		case *tree.Seq:
			walkStm(s.First)
			walkStm(s.Second)
		case *tree.LabelStm:
			defined[s.Label.Name()]++
		}
	}

	walkExp = func(exp tree.Exp) {
		switch e := exp.(type) {
		case *tree.Binop:
			walkExp(e.Left)
			walkExp(e.Right)
		case *tree.Mem:
			walkExp(e.Addr)
		case *tree.Call:
			walkExp(e.Func)
			for _, arg := range e.Args {
				walkExp(arg)
			}
		case *tree.Eseq:
			walkStm(e.Stm)
			walkExp(e.Exp)
		}
	}

	walkStm(body)

	for name := range targets {
		assert.Equal(t, 1, defined[name], "label %s should be defined exactly once", name)
	}
}
