package translate

import (
	"fmt"

	"tigerc/ast"
	"tigerc/frame"
	"tigerc/temp"
	"tigerc/tree"
	"tigerc/types"
)

// irEntry is an entry in the generator's value namespace.
type irEntry interface {
	isIREntry()
}

// varIREntry records where a variable lives and what type it has.  The type
// is what lets field accesses through this variable find their offsets.
type varIREntry struct {
	level  *Level
	access frame.Access
	typ    types.Type
}

// funcIREntry records a function's level, entry label, and result type.
// Built-ins sit at the outermost level, which is how calls to them know to
// omit the static link.
type funcIREntry struct {
	level  *Level
	label  temp.Label
	result types.Type
}

func (*varIREntry) isIREntry()  {}
func (*funcIREntry) isIREntry() {}

// -----------------------------------------------------------------------------

// Generator lowers a semantically valid Tiger program to IR fragments.  It
// assumes the escape analyzer has already run (escape flags drive local
// allocation) and that the program type-checks: lookups are unchecked and
// degrade to Const(0) rather than failing.
type Generator struct {
	temps  *temp.Factory
	frames frame.Factory
	ctx    *types.Context

	// The level of the function currently being translated.
	current *Level

	// The two scoped namespaces mirrored from semantic analysis: types, and
	// variables + functions.
	typeScopes  []map[string]types.Type
	valueScopes []map[string]irEntry

	// The stack of enclosing loop done-labels for break.
	breakLabels []temp.Label

	// Collected output in emission order.
	frags []Fragment

	// Counts label-name uses so that same-named nested functions get
	// distinct labels.
	usedLabels map[string]int
}

// NewGenerator creates a generator for one compilation job.  The factory
// choice fixes the target ABI; the type context must be the one the program
// was checked against so that record field lookups resolve.
func NewGenerator(frames frame.Factory, temps *temp.Factory, ctx *types.Context) *Generator {
	g := &Generator{
		temps:      temps,
		frames:     frames,
		ctx:        ctx,
		usedLabels: make(map[string]int),
	}

	g.current = Outermost(frames, temps)

	g.beginScope()
	g.defineBuiltins()

	return g
}

// Generate lowers the program expression as the body of the implicit _main
// procedure and returns all fragments in emission order.
func (g *Generator) Generate(program ast.Expr) []Fragment {
	g.beginScope()

	exp, _ := g.transExpr(program)
	body := g.procEntryExit(exp.UnNx(g.temps))

	g.endScope()

	g.frags = append(g.frags, &ProcFragment{Body: body, Frame: g.current.Frame()})
	return g.frags
}

// procEntryExit wraps a translated body with the prologue and epilogue
// markers later phases require.  For this phase it is the identity.
func (g *Generator) procEntryExit(body tree.Stm) tree.Stm {
	return body
}

// -----------------------------------------------------------------------------

func (g *Generator) beginScope() {
	g.typeScopes = append(g.typeScopes, make(map[string]types.Type))
	g.valueScopes = append(g.valueScopes, make(map[string]irEntry))
}

func (g *Generator) endScope() {
	g.typeScopes = g.typeScopes[:len(g.typeScopes)-1]
	g.valueScopes = g.valueScopes[:len(g.valueScopes)-1]
}

func (g *Generator) defineType(name string, typ types.Type) {
	g.typeScopes[len(g.typeScopes)-1][name] = typ
}

func (g *Generator) defineValue(name string, entry irEntry) {
	g.valueScopes[len(g.valueScopes)-1][name] = entry
}

func (g *Generator) lookupType(name string) (types.Type, bool) {
	for i := len(g.typeScopes) - 1; i >= 0; i-- {
		if typ, ok := g.typeScopes[i][name]; ok {
			return typ, true
		}
	}

	return nil, false
}

func (g *Generator) lookupValue(name string) (irEntry, bool) {
	for i := len(g.valueScopes) - 1; i >= 0; i-- {
		if entry, ok := g.valueScopes[i][name]; ok {
			return entry, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// wordSize returns the target word size of the current frame.
func (g *Generator) wordSize() int {
	return g.current.Frame().WordSize()
}

// uniqueLabel returns a label for a declared function, named after it and
// uniqued when the name repeats.
func (g *Generator) uniqueLabel(name string) temp.Label {
	n := g.usedLabels[name]
	g.usedLabels[name]++

	if n == 0 {
		return g.temps.NamedLabel(name)
	}

	return g.temps.NamedLabel(fmt.Sprintf("%s_%d", name, n))
}

// stringLiteral emits a string fragment and returns its label.
func (g *Generator) stringLiteral(value string) temp.Label {
	label := g.temps.NewLabel()
	g.frags = append(g.frags, &StringFragment{Label: label, Value: value})
	return label
}

// accessToExp builds the IR expression reading an access relative to the
// given frame-pointer expression.
func accessToExp(access frame.Access, framePtr tree.Exp, wordSize int) tree.Exp {
	switch a := access.(type) {
	case frame.InFrame:
		return &tree.Mem{Addr: &tree.Binop{
			Op:    tree.Plus,
			Left:  framePtr,
			Right: &tree.Const{Value: a.Offset},
		}}
	case frame.InReg:
		return &tree.TempExp{Temp: a.Temp}
	default:
		return &tree.Const{Value: 0}
	}
}

// staticLink computes the frame pointer of the target level as seen from
// the source level, dereferencing the static link of each intervening frame
// starting at the current frame pointer.
func (g *Generator) staticLink(from, to *Level) tree.Exp {
	fp := tree.Exp(&tree.TempExp{Temp: g.current.Frame().FramePointer()})

	level := from
	for level != to && level.Parent != nil {
		fp = accessToExp(level.StaticLink(), fp, level.Frame().WordSize())
		level = level.Parent
	}

	return fp
}

// accessVar builds the IR expression reading a variable, chasing static
// links from the current level to the variable's declaring level.
func (g *Generator) accessVar(entry *varIREntry) tree.Exp {
	fp := g.staticLink(g.current, entry.level)
	return accessToExp(entry.access, fp, g.wordSize())
}

// -----------------------------------------------------------------------------

// builtinSignatures lists the runtime library functions pre-bound at the
// outermost level, with their result types.
var builtinSignatures = []struct {
	name   string
	result types.Type
}{
	{"print", types.PrimVoid},
	{"printi", types.PrimVoid},
	{"flush", types.PrimVoid},
	{"getchar", types.PrimString},
	{"ord", types.PrimInt},
	{"chr", types.PrimString},
	{"size", types.PrimInt},
	{"substring", types.PrimString},
	{"concat", types.PrimString},
	{"not", types.PrimInt},
	{"exit", types.PrimVoid},
}

// defineBuiltins binds the runtime library at the outermost level.  Calls to
// these resolve to external labels of the same name and carry no static
// link.
func (g *Generator) defineBuiltins() {
	for _, sig := range builtinSignatures {
		g.defineValue(sig.name, &funcIREntry{
			level:  g.current,
			label:  g.temps.NamedLabel(sig.name),
			result: sig.result,
		})
	}

	g.defineType("int", types.PrimInt)
	g.defineType("string", types.PrimString)
}
