package frame

import (
	"fmt"
	"strings"

	"tigerc/temp"
)

// MIPS O32 layout constants.
const (
	mipsWordSize   = 4
	mipsMaxRegArgs = 4

	// The O32 ABI reserves four words of argument home space on the stack
	// even for functions passing all arguments in $a0-$a3.
	mipsArgSpace = 16

	mipsArgBase = 16
)

// MipsFrame is the MIPS O32 activation record.
//
// Frame layout (stack grows toward lower addresses):
//
//	[higher addresses]
//	argument 6          fp + 20
//	argument 5          fp + 16
//	argument home area  fp + 0 .. fp + 15  (reserved)
//	saved fp            <- fp
//	local 1             fp - 4
//	local 2             fp - 8
//	[lower addresses]
type MipsFrame struct {
	name        temp.Label
	formals     []Access
	localOffset int
	temps       *temp.Factory
	fp          temp.Temp
	sp          temp.Temp
	rv          temp.Temp
	ra          temp.Temp
}

// MipsFactory creates MIPS frames sharing one temp factory.
type MipsFactory struct {
	Temps *temp.Factory
}

func (f *MipsFactory) NewFrame(name temp.Label, formals []bool) Frame {
	fr := &MipsFrame{
		name:  name,
		temps: f.Temps,
		fp:    f.Temps.NewTemp(),
		sp:    f.Temps.NewTemp(),
		rv:    f.Temps.NewTemp(),
		ra:    f.Temps.NewTemp(),
	}

	for i, escape := range formals {
		switch {
		case i >= mipsMaxRegArgs:
			fr.formals = append(fr.formals, InFrame{Offset: mipsArgBase + (i-mipsMaxRegArgs)*mipsWordSize})
		case escape:
			fr.localOffset -= mipsWordSize
			fr.formals = append(fr.formals, InFrame{Offset: fr.localOffset})
		default:
			fr.formals = append(fr.formals, InReg{Temp: f.Temps.NewTemp()})
		}
	}

	return fr
}

func (fr *MipsFrame) Name() temp.Label   { return fr.name }
func (fr *MipsFrame) Formals() []Access  { return fr.formals }
func (fr *MipsFrame) FramePointer() temp.Temp { return fr.fp }
func (fr *MipsFrame) ReturnValue() temp.Temp  { return fr.rv }
func (fr *MipsFrame) WordSize() int      { return mipsWordSize }

// StackPointer returns the $sp temp.
func (fr *MipsFrame) StackPointer() temp.Temp { return fr.sp }

// ReturnAddress returns the $ra temp.
func (fr *MipsFrame) ReturnAddress() temp.Temp { return fr.ra }

func (fr *MipsFrame) AllocLocal(escape bool) Access {
	if escape {
		fr.localOffset -= mipsWordSize
		return InFrame{Offset: fr.localOffset}
	}

	return InReg{Temp: fr.temps.NewTemp()}
}

func (fr *MipsFrame) String() string {
	strs := make([]string, len(fr.formals))
	for i, formal := range fr.formals {
		strs[i] = formal.String()
	}

	return fmt.Sprintf("MipsFrame(%s) formals=[%s] localOffset=%d",
		fr.name, strings.Join(strs, ", "), fr.localOffset)
}
