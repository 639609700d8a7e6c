package tree

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes the deterministic multi-line text form of IR trees used by
// --dump-ir and the golden-file tests.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintStm writes a statement followed by a newline.  Seq nodes flatten:
// their components print in order at the same depth.
func (p *Printer) PrintStm(stm Stm) {
	switch s := stm.(type) {
	case nil:
		p.line("(null)")
	case *Move:
		p.line("MOVE(")
		p.indent++
		p.expLine(s.Dst, ",")
		p.expLine(s.Src, ")")
		p.indent--
	case *ExpStm:
		p.line("EXP(")
		p.indent++
		p.expLine(s.Exp, ")")
		p.indent--
	case *Jump:
		names := make([]string, len(s.Labels))
		for i, l := range s.Labels {
			names[i] = l.Name()
		}

		p.line("JUMP(")
		p.indent++
		p.expLine(s.Target, ", ["+strings.Join(names, ", ")+"])")
		p.indent--
	case *CJump:
		p.line("CJUMP(" + s.Op.String() + ",")
		p.indent++
		p.expLine(s.Left, ",")
		p.expLine(s.Right, ",")
		p.line(s.True.Name() + ", " + s.False.Name() + ")")
		p.indent--
	case *Seq:
		p.PrintStm(s.First)
		p.PrintStm(s.Second)
	case *LabelStm:
		p.line("LABEL(" + s.Label.Name() + ")")
	default:
		p.line("(unknown stm)")
	}
}

// ExpString renders an expression to a string on one logical layout.
func ExpString(exp Exp) string {
	sb := &strings.Builder{}
	p := NewPrinter(sb)
	p.writeExp(exp)
	return sb.String()
}

// StmString renders a statement to a string.
func StmString(stm Stm) string {
	sb := &strings.Builder{}
	NewPrinter(sb).PrintStm(stm)
	return sb.String()
}

// -----------------------------------------------------------------------------

func (p *Printer) line(text string) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(" ", p.indent*2), text)
}

// expLine writes an expression at the current indent followed by a suffix
// and a newline.
func (p *Printer) expLine(exp Exp, suffix string) {
	fmt.Fprint(p.w, strings.Repeat(" ", p.indent*2))
	p.writeExp(exp)
	fmt.Fprint(p.w, suffix+"\n")
}

func (p *Printer) writeExp(exp Exp) {
	switch e := exp.(type) {
	case nil:
		fmt.Fprint(p.w, "(null)")
	case *Const:
		fmt.Fprintf(p.w, "CONST(%d)", e.Value)
	case *Name:
		fmt.Fprintf(p.w, "NAME(%s)", e.Label.Name())
	case *TempExp:
		fmt.Fprintf(p.w, "TEMP(%s)", e.Temp)
	case *Binop:
		fmt.Fprintf(p.w, "BINOP(%s, ", e.Op)
		p.writeExp(e.Left)
		fmt.Fprint(p.w, ", ")
		p.writeExp(e.Right)
		fmt.Fprint(p.w, ")")
	case *Mem:
		fmt.Fprint(p.w, "MEM(")
		p.writeExp(e.Addr)
		fmt.Fprint(p.w, ")")
	case *Call:
		fmt.Fprint(p.w, "CALL(")
		p.writeExp(e.Func)
		for _, arg := range e.Args {
			fmt.Fprint(p.w, ", ")
			p.writeExp(arg)
		}
		fmt.Fprint(p.w, ")")
	case *Eseq:
		fmt.Fprint(p.w, "ESEQ(\n")
		p.indent++
		p.PrintStm(e.Stm)
		fmt.Fprint(p.w, strings.Repeat(" ", p.indent*2))
		p.writeExp(e.Exp)
		p.indent--
		fmt.Fprint(p.w, ")")
	default:
		fmt.Fprint(p.w, "(unknown exp)")
	}
}
