package frame

import (
	"fmt"
	"strings"

	"tigerc/temp"
)

// x86-64 System V layout constants.
const (
	x64WordSize   = 8
	x64MaxRegArgs = 6

	// Overflow formals start above the saved frame pointer and return
	// address.
	x64ArgBase = 16
)

// X64Frame is the x86-64 System V activation record.
//
// Frame layout (stack grows toward lower addresses):
//
//	[higher addresses]
//	argument 8          fp + 24
//	argument 7          fp + 16
//	return address      fp + 8
//	saved fp            <- fp
//	local 1             fp - 8
//	local 2             fp - 16
//	[lower addresses]
//
// The first six formals are eligible for register passing.  A register
// formal that escapes is given a stack home at a fresh negative offset; the
// function's prologue copies it there on entry.
type X64Frame struct {
	name        temp.Label
	formals     []Access
	localOffset int
	temps       *temp.Factory
	fp          temp.Temp
	rv          temp.Temp
}

// X64Factory creates x86-64 frames sharing one temp factory.
type X64Factory struct {
	Temps *temp.Factory
}

func (f *X64Factory) NewFrame(name temp.Label, formals []bool) Frame {
	fr := &X64Frame{
		name:  name,
		temps: f.Temps,
		fp:    f.Temps.NewTemp(),
		rv:    f.Temps.NewTemp(),
	}

	for i, escape := range formals {
		switch {
		case i >= x64MaxRegArgs:
			// Overflow formals live above the frame pointer regardless of
			// escape.
			fr.formals = append(fr.formals, InFrame{Offset: x64ArgBase + (i-x64MaxRegArgs)*x64WordSize})
		case escape:
			// Register formal that escapes gets a stack home.
			fr.localOffset -= x64WordSize
			fr.formals = append(fr.formals, InFrame{Offset: fr.localOffset})
		default:
			fr.formals = append(fr.formals, InReg{Temp: f.Temps.NewTemp()})
		}
	}

	return fr
}

func (fr *X64Frame) Name() temp.Label   { return fr.name }
func (fr *X64Frame) Formals() []Access  { return fr.formals }
func (fr *X64Frame) FramePointer() temp.Temp { return fr.fp }
func (fr *X64Frame) ReturnValue() temp.Temp  { return fr.rv }
func (fr *X64Frame) WordSize() int      { return x64WordSize }

func (fr *X64Frame) AllocLocal(escape bool) Access {
	if escape {
		fr.localOffset -= x64WordSize
		return InFrame{Offset: fr.localOffset}
	}

	return InReg{Temp: fr.temps.NewTemp()}
}

func (fr *X64Frame) String() string {
	strs := make([]string, len(fr.formals))
	for i, formal := range fr.formals {
		strs[i] = formal.String()
	}

	return fmt.Sprintf("X64Frame(%s) formals=[%s] localOffset=%d",
		fr.name, strings.Join(strs, ", "), fr.localOffset)
}
