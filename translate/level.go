package translate

import (
	"tigerc/frame"
	"tigerc/temp"
)

// Level is a function-nesting scope.  It owns the function's frame and a
// pointer to its parent level; the outermost level (the main program) has no
// parent.  Levels are referenced from fragments and from variable entries in
// the IR environment and outlive the generator, so the variable accesses
// captured in IR keep referring to stable frames.
type Level struct {
	// The parent level, nil for the outermost.
	Parent *Level

	frame frame.Frame
}

// Outermost creates the level of the implicit main program.
func Outermost(frames frame.Factory, temps *temp.Factory) *Level {
	return &Level{frame: frames.NewFrame(temps.NamedLabel("_main"), nil)}
}

// NewLevel creates a child level for a declared function.  The static link
// is added as the first formal and always escapes.
func NewLevel(parent *Level, name temp.Label, formals []bool, frames frame.Factory) *Level {
	all := append([]bool{true}, formals...)
	return &Level{Parent: parent, frame: frames.NewFrame(name, all)}
}

// Frame returns the level's frame.
func (l *Level) Frame() frame.Frame {
	return l.frame
}

// Formals returns the accesses of the declared parameters, excluding the
// static link.
func (l *Level) Formals() []frame.Access {
	all := l.frame.Formals()
	if len(all) <= 1 {
		return nil
	}

	return all[1:]
}

// StaticLink returns the access of the level's static link.
func (l *Level) StaticLink() frame.Access {
	return l.frame.Formals()[0]
}
