package translate

import (
	"tigerc/frame"
	"tigerc/temp"
	"tigerc/tree"
)

// Fragment is a unit of compiler output handed to the downstream phases: a
// translated procedure body with its frame, or a string literal with its
// label.  Fragments are collected in emission order, which is observable.
type Fragment interface {
	isFragment()
}

// ProcFragment is a procedure body and the frame it executes in.
type ProcFragment struct {
	Body  tree.Stm
	Frame frame.Frame
}

// StringFragment is a string literal placed at a label.
type StringFragment struct {
	Label temp.Label
	Value string
}

func (*ProcFragment) isFragment()   {}
func (*StringFragment) isFragment() {}
