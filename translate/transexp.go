package translate

import (
	"tigerc/temp"
	"tigerc/tree"
)

// TransExp is a translated expression in one of three modes: Ex produces a
// value, Nx produces only effects, and Cx is a conditional parameterized by
// its true and false labels.  The three coercions convert between modes on
// demand; the Cx cases carry the design weight of short-circuit lowering.
type TransExp interface {
	// UnEx coerces to a value-producing IR expression.
	UnEx(temps *temp.Factory) tree.Exp

	// UnNx coerces to a statement executed for effect.
	UnNx(temps *temp.Factory) tree.Stm

	// UnCx coerces to a statement that jumps to t when the value is true
	// and to f otherwise.
	UnCx(t, f temp.Label, temps *temp.Factory) tree.Stm
}

// CondFunc builds the branching statement of a conditional given its true
// and false labels.
type CondFunc func(t, f temp.Label) tree.Stm

// Ex wraps a value-producing expression.
func Ex(exp tree.Exp) TransExp { return exInstance{exp} }

// Nx wraps an effect-only statement.
func Nx(stm tree.Stm) TransExp { return nxInstance{stm} }

// Cx wraps a conditional.
func Cx(fn CondFunc) TransExp { return cxInstance{fn} }

// -----------------------------------------------------------------------------

type exInstance struct {
	exp tree.Exp
}

func (e exInstance) UnEx(*temp.Factory) tree.Exp {
	return e.exp
}

func (e exInstance) UnNx(*temp.Factory) tree.Stm {
	return &tree.ExpStm{Exp: e.exp}
}

func (e exInstance) UnCx(t, f temp.Label, _ *temp.Factory) tree.Stm {
	// The value is true when nonzero.
	return &tree.CJump{Op: tree.Ne, Left: e.exp, Right: &tree.Const{Value: 0}, True: t, False: f}
}

// -----------------------------------------------------------------------------

type nxInstance struct {
	stm tree.Stm
}

func (n nxInstance) UnEx(*temp.Factory) tree.Exp {
	// A statement has no value; recover with zero.
	return &tree.Eseq{Stm: n.stm, Exp: &tree.Const{Value: 0}}
}

func (n nxInstance) UnNx(*temp.Factory) tree.Stm {
	return n.stm
}

func (n nxInstance) UnCx(t, f temp.Label, _ *temp.Factory) tree.Stm {
	// A statement cannot branch; recover by falling to false.
	return tree.SeqOf(n.stm, tree.JumpTo(f))
}

// -----------------------------------------------------------------------------

type cxInstance struct {
	fn CondFunc
}

func (c cxInstance) UnEx(temps *temp.Factory) tree.Exp {
	r := temps.NewTemp()
	t := temps.NewLabel()
	f := temps.NewLabel()
	join := temps.NewLabel()

	return &tree.Eseq{
		Stm: tree.SeqOf(
			&tree.Move{Dst: &tree.TempExp{Temp: r}, Src: &tree.Const{Value: 1}},
			c.fn(t, f),
			&tree.LabelStm{Label: f},
			&tree.Move{Dst: &tree.TempExp{Temp: r}, Src: &tree.Const{Value: 0}},
			tree.JumpTo(join),
			&tree.LabelStm{Label: t},
			tree.JumpTo(join),
			&tree.LabelStm{Label: join},
		),
		Exp: &tree.TempExp{Temp: r},
	}
}

func (c cxInstance) UnNx(temps *temp.Factory) tree.Stm {
	// Evaluate the condition for its effects; both arms fall through.
	t := temps.NewLabel()
	f := temps.NewLabel()

	return tree.SeqOf(c.fn(t, f), &tree.LabelStm{Label: t}, &tree.LabelStm{Label: f})
}

func (c cxInstance) UnCx(t, f temp.Label, _ *temp.Factory) tree.Stm {
	return c.fn(t, f)
}
